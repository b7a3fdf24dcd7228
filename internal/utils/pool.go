// Package utils holds small data-structure helpers used by the layering
// package, in the spirit of gnark's own internal/utils grab-bag.
package utils

// Pool is an insertion-ordered, deduplicating collection: Add is a no-op for
// a value already present, returning its existing index, and Map exposes the
// value -> index lookup. It is the Go analogue of the Rust Pool<usize> used
// throughout the layer layout solver to track which variables occur at a
// given layer.
type Pool[T comparable] struct {
	items []T
	index map[T]int
}

// NewPool returns an empty pool.
func NewPool[T comparable]() *Pool[T] {
	return &Pool[T]{index: make(map[T]int)}
}

// Add inserts v if not already present and returns its index either way.
func (p *Pool[T]) Add(v T) int {
	if idx, ok := p.index[v]; ok {
		return idx
	}
	idx := len(p.items)
	p.items = append(p.items, v)
	p.index[v] = idx
	return idx
}

// Len reports the number of distinct values stored.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Vec returns the values in insertion order. The caller must not mutate it.
func (p *Pool[T]) Vec() []T {
	return p.items
}

// Map returns the value -> index lookup. The caller must not mutate it.
func (p *Pool[T]) Map() map[T]int {
	return p.index
}
