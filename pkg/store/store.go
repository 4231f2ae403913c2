package store

import (
	"strings"
	"sync"
)

// Entity is any record with a server-assigned identifier.
type Entity interface {
	EntityID() string
}

// Patch merges a partial record into a full one and returns the result.
type Patch[T Entity] interface {
	Apply(item T) T
}

// Store is an in-memory mirror of one server-side collection: a flat list in
// insertion order from the last full fetch. It performs no I/O itself; callers
// orchestrate network calls and mutate the store only after they succeed.
type Store[T Entity] struct {
	mu     sync.RWMutex
	items  []T
	loaded bool
}

func New[T Entity]() *Store[T] {
	return &Store[T]{}
}

// ReplaceAll overwrites the whole collection, used after a full fetch.
func (s *Store[T]) ReplaceAll(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]T, len(items))
	copy(s.items, items)
	s.loaded = true
}

// Loaded reports whether a full fetch has populated the store yet.
func (s *Store[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Reset drops the collection and the loaded flag, forcing the next page view
// to fetch again.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = false
}

// Add appends one server-returned record.
func (s *Store[T]) Add(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
}

// Update merges a patch into the item with the matching identifier. Unknown
// identifiers are a no-op; the collection is otherwise untouched.
func (s *Store[T]) Update(id string, patch Patch[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items[i] = patch.Apply(item)
			return true
		}
	}
	return false
}

// Remove deletes the item with the matching identifier. Unknown identifiers
// are a no-op.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.EntityID() == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the item with the matching identifier.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// List returns a copy of the collection in its current order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Filter returns the items for which keep is true, preserving relative order.
func (s *Store[T]) Filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, item := range s.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// MatchesSearch reports whether a primary text field case-insensitively
// contains the search term. An empty term matches everything.
func MatchesSearch(field, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(term))
}
