// Package slot provides the single-entry pending-request holder used to
// correlate an in-flight question with the answer delivered for it.
package slot

import (
	"errors"
	"sync"
)

var (
	// ErrEmpty indicates Take was called while nothing was pending.
	ErrEmpty = errors.New("nothing pending")
	// ErrIDMismatch indicates Take was called with an id that does not match
	// the pending entry. The entry stays pending.
	ErrIDMismatch = errors.New("request id mismatch")
)

// Slot holds at most one pending entry, keyed by a caller-supplied id.
// Generic over the entry payload so the root package can keep its resolver
// type private.
type Slot[T any] struct {
	mu       sync.Mutex
	id       string
	value    T
	occupied bool
}

func New[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Put stores a new entry, unconditionally displacing any current one.
// The displaced entry is returned so the caller can drop its resolver;
// displaced=false means the slot was empty.
func (slot *Slot[T]) Put(id string, value T) (displaced T, wasOccupied bool) {
	slot.mu.Lock()
	defer slot.mu.Unlock()

	displaced, wasOccupied = slot.value, slot.occupied
	slot.id = id
	slot.value = value
	slot.occupied = true
	return displaced, wasOccupied
}

// Take removes and returns the pending entry if its id matches. On mismatch
// the entry is left in place and ErrIDMismatch is returned; on an empty slot
// ErrEmpty is returned.
func (slot *Slot[T]) Take(id string) (T, error) {
	slot.mu.Lock()
	defer slot.mu.Unlock()

	var zero T
	if !slot.occupied {
		return zero, ErrEmpty
	}
	if slot.id != id {
		return zero, ErrIDMismatch
	}

	value := slot.value
	slot.id = ""
	slot.value = zero
	slot.occupied = false
	return value, nil
}

// Pending reports the id of the current entry, if any.
func (slot *Slot[T]) Pending() (string, bool) {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.id, slot.occupied
}
