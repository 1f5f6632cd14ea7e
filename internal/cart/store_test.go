package cart_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/SKTA1805/Smart-trolley/internal/cart"
	"github.com/SKTA1805/Smart-trolley/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]catalog.Product{
		"T1": {Name: "A", Price: 10.0},
		"T2": {Name: "B", Price: 25.5},
	})
}

// countingNotifier counts Broadcast calls.
type countingNotifier struct {
	n atomic.Int64
}

func (c *countingNotifier) Broadcast() { c.n.Add(1) }

func TestAddByTag(t *testing.T) {
	t.Run("unknown tag leaves cart unchanged", func(t *testing.T) {
		store := cart.New(testCatalog(), nil)
		if _, err := store.AddByTag("T1"); err != nil {
			t.Fatalf("AddByTag(T1) failed: %v", err)
		}
		before := store.Snapshot()

		_, err := store.AddByTag("UNKNOWN")
		if !errors.Is(err, cart.ErrUnknownTag) {
			t.Fatalf("expected ErrUnknownTag, got %v", err)
		}

		after := store.Snapshot()
		if len(after) != len(before) || after[0] != before[0] {
			t.Fatalf("cart changed after failed add: before %+v, after %+v", before, after)
		}
	})

	t.Run("repeated adds accumulate into one line", func(t *testing.T) {
		store := cart.New(testCatalog(), nil)
		const n = 5
		for i := 0; i < n; i++ {
			if _, err := store.AddByTag("T1"); err != nil {
				t.Fatalf("AddByTag failed: %v", err)
			}
		}

		snap := store.Snapshot()
		if len(snap) != 1 {
			t.Fatalf("expected 1 line, got %d", len(snap))
		}
		want := cart.Line{Tag: "T1", Name: "A", Price: 10.0, Quantity: n}
		if snap[0] != want {
			t.Fatalf("got %+v, want %+v", snap[0], want)
		}
	})

	t.Run("re-adding does not move the line", func(t *testing.T) {
		store := cart.New(testCatalog(), nil)
		store.AddByTag("T1")
		store.AddByTag("T2")
		store.AddByTag("T1")

		snap := store.Snapshot()
		if len(snap) != 2 || snap[0].Tag != "T1" || snap[1].Tag != "T2" {
			t.Fatalf("insertion order not preserved: %+v", snap)
		}
	})

	t.Run("notifies exactly once per successful add", func(t *testing.T) {
		notifier := &countingNotifier{}
		store := cart.New(testCatalog(), notifier)

		store.AddByTag("T1")
		store.AddByTag("T1")
		store.AddByTag("UNKNOWN")

		if got := notifier.n.Load(); got != 2 {
			t.Fatalf("expected 2 broadcasts, got %d", got)
		}
	})
}

func TestRemoveOneByTag(t *testing.T) {
	t.Run("absent tag is an idempotent no-op", func(t *testing.T) {
		notifier := &countingNotifier{}
		store := cart.New(testCatalog(), notifier)
		store.AddByTag("T1")
		before := store.Snapshot()

		snap := store.RemoveOneByTag("T2")
		if len(snap) != len(before) || snap[0] != before[0] {
			t.Fatalf("no-op remove changed cart: %+v", snap)
		}
		if got := notifier.n.Load(); got != 1 {
			t.Fatalf("no-op remove broadcast: got %d notifications", got)
		}
	})

	t.Run("decrements then deletes", func(t *testing.T) {
		store := cart.New(testCatalog(), nil)
		store.AddByTag("T1")
		store.AddByTag("T1")

		snap := store.RemoveOneByTag("T1")
		if len(snap) != 1 || snap[0].Quantity != 1 {
			t.Fatalf("expected quantity 1, got %+v", snap)
		}

		snap = store.RemoveOneByTag("T1")
		if len(snap) != 0 {
			t.Fatalf("expected empty cart, got %+v", snap)
		}
	})

	t.Run("notifies when a remove changed the cart", func(t *testing.T) {
		notifier := &countingNotifier{}
		store := cart.New(testCatalog(), notifier)
		store.AddByTag("T1")

		store.RemoveOneByTag("T1")
		if got := notifier.n.Load(); got != 2 {
			t.Fatalf("expected 2 broadcasts (add + remove), got %d", got)
		}
	})

	t.Run("no line survives at quantity zero", func(t *testing.T) {
		store := cart.New(testCatalog(), nil)
		store.AddByTag("T1")
		for _, l := range store.RemoveOneByTag("T1") {
			if l.Quantity < 1 {
				t.Fatalf("line with quantity %d in snapshot", l.Quantity)
			}
		}
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	store := cart.New(testCatalog(), nil)
	store.AddByTag("T1")

	snap := store.Snapshot()
	snap[0].Quantity = 99

	if got := store.Snapshot()[0].Quantity; got != 1 {
		t.Fatalf("external mutation leaked into store: quantity %d", got)
	}
}

func TestConcurrentAdds(t *testing.T) {
	store := cart.New(testCatalog(), &countingNotifier{})

	const n = 100
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := store.AddByTag("T1")
			return err
		})
		g.Go(func() error {
			store.RemoveOneByTag("T2")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent mutation failed: %v", err)
	}

	snap := store.Snapshot()
	if len(snap) != 1 || snap[0].Quantity != n {
		t.Fatalf("expected one line with quantity %d, got %+v", n, snap)
	}
}

func TestTotal(t *testing.T) {
	lines := []cart.Line{
		{Tag: "T1", Name: "A", Price: 10.0, Quantity: 2},
		{Tag: "T2", Name: "B", Price: 25.5, Quantity: 3},
	}
	if got, want := cart.Total(lines), 96.5; got != want {
		t.Fatalf("Total = %v, want %v", got, want)
	}
	if got := cart.Total(nil); got != 0 {
		t.Fatalf("Total(nil) = %v, want 0", got)
	}
}
