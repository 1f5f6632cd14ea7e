package httpx_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialWS(t *testing.T, srvURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srvURL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCartChangeSignalsObservers(t *testing.T) {
	srv := newTestServer(t, &fakeOrderCreator{})
	conn := dialWS(t, srv.URL)

	resp := postJSON(t, srv.URL+"/update-cart", `{"tag":"T1"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading signal: %v", err)
	}
	if kind != websocket.TextMessage || string(msg) != "update_cart" {
		t.Fatalf("got message %q (type %d), want %q", msg, kind, "update_cart")
	}
}

func TestFailedAddSignalsNothing(t *testing.T) {
	srv := newTestServer(t, &fakeOrderCreator{})
	conn := dialWS(t, srv.URL)

	postJSON(t, srv.URL+"/update-cart", `{"tag":"NOPE"}`)

	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, msg, err := conn.ReadMessage(); err == nil {
		t.Fatalf("unexpected signal %q after failed add", msg)
	}
}
