package notify_test

import (
	"testing"

	"github.com/SKTA1805/Smart-trolley/internal/notify"
)

func TestBroadcastReachesAllObservers(t *testing.T) {
	hub := notify.NewHub()
	a := hub.Join()
	b := hub.Join()

	hub.Broadcast()

	for name, ch := range map[string]chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		default:
			t.Fatalf("observer %s received no signal", name)
		}
	}
}

func TestBroadcastNeverBlocksOnBusyObserver(t *testing.T) {
	hub := notify.NewHub()
	ch := hub.Join()

	// Fill the buffer; further broadcasts must coalesce, not block.
	hub.Broadcast()
	hub.Broadcast()
	hub.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatal("signals were queued instead of coalesced")
	default:
	}
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := notify.NewHub()
	ch := hub.Join()
	hub.Leave(ch)
	hub.Leave(ch) // second leave is harmless

	hub.Broadcast()

	select {
	case <-ch:
		t.Fatal("left observer still received a signal")
	default:
	}
	if hub.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", hub.Len())
	}
}

func TestNoReplayForLateJoiner(t *testing.T) {
	hub := notify.NewHub()
	hub.Broadcast()

	ch := hub.Join()
	select {
	case <-ch:
		t.Fatal("late joiner received a replayed signal")
	default:
	}
}
