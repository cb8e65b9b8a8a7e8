package pool

import "sync"

// SlicePool pools slices of T, typically the walker's frame stacks, so that repeated
// encode and decode calls do not reallocate them.
type SlicePool[T any] struct {
	pool sync.Pool
}

// NewSlicePool creates a SlicePool whose fresh slices have the given capacity.
func NewSlicePool[T any](capacity int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, capacity)
				return &s
			},
		},
	}
}

// Get retrieves an empty slice from the pool.
//
// The caller must call the returned cleanup function with the final slice (which may have been
// re-allocated by append) to return it to the pool.
//
// Example:
//
//	stack, release := framePool.Get()
//	defer func() { release(stack) }()
func (p *SlicePool[T]) Get() ([]T, func([]T)) {
	ptr, _ := p.pool.Get().(*[]T)
	slice := (*ptr)[:0]

	return slice, func(final []T) {
		clear(final[:cap(final)])
		*ptr = final[:0]
		p.pool.Put(ptr)
	}
}
