package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// updateToken is the opaque signal sent to displays. Clients refetch
// the cart on receipt; the message itself carries no payload.
const updateToken = "update_cart"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Displays are served from other origins on the shop LAN.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and registers it as a cart observer.
// Each connection gets its own signal channel from the hub; a dead or
// slow display only ever loses its own signals.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	ch := h.hub.Join()

	go h.writeLoop(conn, ch)
	go h.readLoop(conn, ch)
}

// writeLoop forwards hub signals to the connection and keeps it alive
// with pings. It owns all writes to conn.
func (h *Handler) writeLoop(conn *websocket.Conn, ch chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.hub.Leave(ch)
		_ = conn.Close()
	}()

	for {
		select {
		case <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(updateToken)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards inbound frames — the protocol defines no
// client→server messages — and unregisters the observer when the peer
// goes away.
func (h *Handler) readLoop(conn *websocket.Conn, ch chan struct{}) {
	defer func() {
		h.hub.Leave(ch)
		_ = conn.Close()
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
