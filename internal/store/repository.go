package store

import (
	"errors"
	"fmt"
)

// ErrDuplicateID signals an insertion with an id that is already stored.
var ErrDuplicateID = errors.New("entity id already exists")

// ErrNotFound signals that no entity with the requested id is stored.
var ErrNotFound = errors.New("entity not found")

// ErrInvalidValue signals a value that violates a domain constraint.
var ErrInvalidValue = errors.New("invalid value")

// Keyed is the minimal contract an entity must satisfy to be stored: it can
// report its own immutable identity.
type Keyed[K comparable] interface {
	Key() K
}

// Repository is an in-memory map from entity id to entity. Ids are unique,
// insertion order is preserved for deterministic listing, and every read
// returns an independent copy of the stored values.
type Repository[K comparable, T Keyed[K]] struct {
	entities map[K]T
	order    []K
}

// NewRepository constructs an empty Repository.
func NewRepository[K comparable, T Keyed[K]]() *Repository[K, T] {
	return &Repository[K, T]{entities: make(map[K]T)}
}

// Add inserts the entity. It fails with ErrDuplicateID when an entity with
// the same id is already stored; a failed Add leaves the repository
// unchanged.
func (r *Repository[K, T]) Add(e T) error {
	id := e.Key()
	if _, exists := r.entities[id]; exists {
		return fmt.Errorf("add %v: %w", id, ErrDuplicateID)
	}
	r.entities[id] = e
	r.order = append(r.order, id)
	return nil
}

// Get returns the entity with the given id, or ErrNotFound.
func (r *Repository[K, T]) Get(id K) (T, error) {
	e, ok := r.entities[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("get %v: %w", id, ErrNotFound)
	}
	return e, nil
}

// All returns a snapshot of every stored entity in insertion order.
// Mutating the returned slice never affects the repository.
func (r *Repository[K, T]) All() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entities[id])
	}
	return out
}

// Remove deletes the entity with the given id, or fails with ErrNotFound.
func (r *Repository[K, T]) Remove(id K) error {
	if _, ok := r.entities[id]; !ok {
		return fmt.Errorf("remove %v: %w", id, ErrNotFound)
	}
	delete(r.entities, id)
	for i, k := range r.order {
		if k == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Replace swaps the stored entity at id for e, keeping the insertion slot.
// It fails with ErrNotFound when id is absent and with ErrInvalidValue when
// the replacement reports a different id than the slot it targets.
func (r *Repository[K, T]) Replace(id K, e T) error {
	if _, ok := r.entities[id]; !ok {
		return fmt.Errorf("replace %v: %w", id, ErrNotFound)
	}
	if e.Key() != id {
		return fmt.Errorf("replace %v: replacement has id %v: %w", id, e.Key(), ErrInvalidValue)
	}
	r.entities[id] = e
	return nil
}

// Update loads the entity at id, applies fn, and stores the result. Errors
// returned by fn propagate unwrapped and leave the stored entity untouched.
func (r *Repository[K, T]) Update(id K, fn func(T) (T, error)) error {
	e, ok := r.entities[id]
	if !ok {
		return fmt.Errorf("update %v: %w", id, ErrNotFound)
	}
	updated, err := fn(e)
	if err != nil {
		return err
	}
	return r.Replace(id, updated)
}

// First returns the first stored entity, in insertion order, satisfying
// pred. The second result is false when nothing matches.
func (r *Repository[K, T]) First(pred func(T) bool) (T, bool) {
	for _, id := range r.order {
		if e := r.entities[id]; pred(e) {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// Len reports the number of stored entities.
func (r *Repository[K, T]) Len() int {
	return len(r.order)
}

// Clear removes every stored entity.
func (r *Repository[K, T]) Clear() {
	r.entities = make(map[K]T)
	r.order = nil
}
