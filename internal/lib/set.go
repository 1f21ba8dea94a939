package lib

import (
	"slices"
	"sync"
)

// Set is thread-safe and can be passed by value.
type Set[T comparable] struct {
	data map[T]struct{}
	mu   *sync.RWMutex
}

func NewSet[T comparable](elems ...T) Set[T] {
	s := Set[T]{
		data: make(map[T]struct{}, len(elems)),
		mu:   &sync.RWMutex{},
	}
	for _, e := range elems {
		s.data[e] = struct{}{}
	}
	return s
}

// Add reports whether elem was newly added.
func (s Set[T]) Add(elem T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[elem]; exists {
		return false
	}
	s.data[elem] = struct{}{}
	return true
}

// Reset replaces the contents with elems in one step.
func (s Set[T]) Reset(elems ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.data)
	for _, e := range elems {
		s.data[e] = struct{}{}
	}
}

func (s Set[T]) Contains(elem T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.data[elem]
	return exists
}

func (s Set[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// AsSlice returns the elements in no particular order.
func (s Set[T]) AsSlice() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	elements := make([]T, 0, len(s.data))
	for elem := range s.data {
		elements = append(elements, elem)
	}

	return elements
}

// Sorted returns the elements of a string set in ascending order.
func Sorted(s Set[string]) []string {
	out := s.AsSlice()
	slices.Sort(out)
	return out
}

// EdgeSet remembers undirected edges between string keys.
type EdgeSet struct {
	edges Set[string]
}

func NewEdgeSet() EdgeSet {
	return EdgeSet{edges: NewSet[string]()}
}

// AddOnce records the edge a-b and reports true, unless a-b or b-a was already
// recorded. Tab separates the keys since it never appears in an identifier key that
// came through a URL or a file name.
func (e EdgeSet) AddOnce(a, b string) bool {
	if e.edges.Contains(b + "\t" + a) {
		return false
	}
	return e.edges.Add(a + "\t" + b)
}

func (e EdgeSet) Size() int {
	return e.edges.Size()
}
