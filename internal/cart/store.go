// Package cart owns the single shared shopping cart. All reads and
// mutations go through Store, which serializes access with a mutex so a
// request never observes a partially applied mutation from another.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SKTA1805/Smart-trolley/internal/catalog"
)

// ErrUnknownTag is returned when a scanned tag does not resolve in the
// catalog. The cart is left unmodified.
var ErrUnknownTag = errors.New("unknown tag")

// Resolver resolves a tag to its product descriptor. Satisfied by
// *catalog.Catalog.
type Resolver interface {
	Lookup(tag string) (catalog.Product, bool)
}

// Notifier receives a signal after the store completes an effective
// mutation. Satisfied by *notify.Hub. Implementations must not block.
type Notifier interface {
	Broadcast()
}

// Store is the mutable cart. The zero value is not usable; construct
// with New.
type Store struct {
	mu       sync.Mutex
	lines    []Line
	resolver Resolver
	notifier Notifier
}

// New returns an empty cart store. notifier may be nil, in which case
// mutations are applied silently.
func New(resolver Resolver, notifier Notifier) *Store {
	return &Store{resolver: resolver, notifier: notifier}
}

// AddByTag resolves tag in the catalog and adds one unit to the cart:
// an existing line has its quantity incremented, otherwise a new line
// is appended with quantity 1 and the catalog's current name and price.
// Re-adding an existing tag does not move the line. Returns the updated
// snapshot, or ErrUnknownTag when the tag does not resolve.
//
// Observers are notified exactly once per successful call.
func (s *Store) AddByTag(tag string) ([]Line, error) {
	p, ok := s.resolver.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("add %q: %w", tag, ErrUnknownTag)
	}

	s.mu.Lock()
	if i := s.index(tag); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, Line{Tag: tag, Name: p.Name, Price: p.Price, Quantity: 1})
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify()
	return snap, nil
}

// RemoveOneByTag removes one unit of the tagged product: a line with
// quantity ≥ 2 is decremented, a quantity-1 line is deleted entirely.
// Removing a tag that is not in the cart is an idempotent no-op, not an
// error. Returns the updated snapshot.
//
// Observers are notified when the call changed the cart, so displays
// do not go stale after a removal. A remove that changed nothing does
// not notify.
func (s *Store) RemoveOneByTag(tag string) []Line {
	s.mu.Lock()
	changed := false
	if i := s.index(tag); i >= 0 {
		changed = true
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
		} else {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return snap
}

// Snapshot returns a point-in-time copy of the cart lines in insertion
// order. The copy is the caller's to keep; later mutations do not
// affect it.
func (s *Store) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// index returns the position of the line holding tag, or -1.
// Caller must hold s.mu.
func (s *Store) index(tag string) int {
	for i, l := range s.lines {
		if l.Tag == tag {
			return i
		}
	}
	return -1
}

// snapshotLocked copies the line slice. Caller must hold s.mu. The
// result is never nil so it encodes as [] rather than null.
func (s *Store) snapshotLocked() []Line {
	snap := make([]Line, len(s.lines))
	copy(snap, s.lines)
	return snap
}

func (s *Store) notify() {
	if s.notifier != nil {
		s.notifier.Broadcast()
	}
}
