// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package observe

import "sync"

// Value is an observable value. Observers are notified only when the value changes.
type Value[T comparable] struct {
	mu        sync.Mutex
	v         T
	nextID    uint64
	observers map[uint64]func(T)
}

// NewValue creates a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{v: initial, observers: make(map[uint64]func(T))}
}

// Get returns the current value.
func (x *Value[T]) Get() T {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.v
}

// Set stores v and notifies observers if it differs from the current value.
func (x *Value[T]) Set(v T) bool {
	x.mu.Lock()
	if x.v == v {
		x.mu.Unlock()
		return false
	}
	x.v = v
	fns := x.snapshot()
	x.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return true
}

// Publish stores v and notifies observers even when v equals the current value.
func (x *Value[T]) Publish(v T) {
	x.mu.Lock()
	x.v = v
	fns := x.snapshot()
	x.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (x *Value[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(x.observers))
	for _, fn := range x.observers {
		fns = append(fns, fn)
	}
	return fns
}

// Observe calls fn with the current value and on every change until the
// returned cancel func is called.
func (x *Value[T]) Observe(fn func(T)) (cancel func()) {
	x.mu.Lock()
	id := x.nextID
	x.nextID++
	x.observers[id] = fn
	cur := x.v
	x.mu.Unlock()

	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			x.mu.Lock()
			delete(x.observers, id)
			x.mu.Unlock()
		})
	}
}
