// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package observe provides the values the player exposes to its host.
package observe

import "sync"

// OneShot is a queue of one. A pushed value is delivered to the first Take
// and never again; a newer push replaces a pending one.
type OneShot[T any] struct {
	mu       sync.Mutex
	value    T
	consumed bool
	notify   chan struct{}
}

// NewOneShot creates an empty OneShot.
func NewOneShot[T any]() *OneShot[T] {
	return &OneShot[T]{consumed: true, notify: make(chan struct{}, 1)}
}

// Push stores v as the pending value and wakes a waiter.
func (o *OneShot[T]) Push(v T) {
	o.mu.Lock()
	o.value = v
	o.consumed = false
	o.mu.Unlock()

	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// Take returns the pending value and marks it consumed.
func (o *OneShot[T]) Take() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var zero T
	if o.consumed {
		return zero, false
	}
	v := o.value
	o.value = zero
	o.consumed = true
	return v, true
}

// Pending reports whether a value is waiting.
func (o *OneShot[T]) Pending() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.consumed
}

// Ready is signalled after each Push. A signal does not guarantee that Take
// succeeds if another consumer got there first.
func (o *OneShot[T]) Ready() <-chan struct{} {
	return o.notify
}
