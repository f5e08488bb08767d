// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import "sync/atomic"

// circularArray is the growable backing store of a Deque. A thief
// mid-steal can keep reading an array the owner has already swapped out
// from under it: the garbage collector keeps it alive for as long as the
// thief holds the loaded *circularArray pointer, so no refcounting is
// needed. The owner replaces the pointer atomically; thieves snapshot it
// once per steal attempt and never re-read it mid-attempt.
type circularArray[T any] struct {
	buf  []T
	mask int64
}

func newCircularArray[T any](size int64) *circularArray[T] {
	buf := make([]T, size)
	return &circularArray[T]{buf: buf, mask: size - 1}
}

func (a *circularArray[T]) capacity() int64 { return int64(len(a.buf)) }

func (a *circularArray[T]) get(i int64) T { return a.buf[i&a.mask] }

func (a *circularArray[T]) put(i int64, v T) { a.buf[i&a.mask] = v }

// grow returns a new array of double the capacity, containing only the
// live range [t, b) copied from a.
func (a *circularArray[T]) grow(t, b int64) (*circularArray[T], error) {
	newArr, err := tryMake[T]("deque.grow", int(a.capacity())*2)
	if err != nil {
		return nil, err
	}
	n2 := &circularArray[T]{buf: newArr, mask: int64(len(newArr)) - 1}
	for i := t; i < b; i++ {
		n2.put(i, a.get(i))
	}
	return n2, nil
}

// Deque is a lock-free Chase-Lev work-stealing deque. The owning worker
// calls PushBottom/PopBottom; any other worker may call
// StealTop concurrently. Element type should be a small, cheap-to-copy
// task descriptor — the deque stores values, not pointers, by design.
type Deque[T any] struct {
	top    atomic.Int64
	bottom atomic.Int64
	arr    atomic.Pointer[circularArray[T]]
}

// NewDeque returns an empty Deque with the given initial capacity, rounded
// up to the next power of two (minimum 8).
func NewDeque[T any](initialCapacity int) *Deque[T] {
	cap := int64(8)
	for cap < int64(initialCapacity) {
		cap *= 2
	}
	d := &Deque[T]{}
	d.arr.Store(newCircularArray[T](cap))
	return d
}

// PushBottom adds v to the bottom (owner-only, LIFO end). If the deque is
// full it grows the backing array first. Returns ErrParallelismUnavailable
// if growing requires an allocation that fails.
func (d *Deque[T]) PushBottom(v T) error {
	b := d.bottom.Load()
	t := d.top.Load()
	a := d.arr.Load()

	if b-t >= a.capacity() {
		grown, err := a.grow(t, b)
		if err != nil {
			return err
		}
		d.arr.Store(grown)
		a = grown
	}

	a.put(b, v)
	d.bottom.Store(b + 1)
	return nil
}

// PopBottom removes and returns the element at the bottom (owner-only,
// LIFO end). ok is false if the deque was empty.
func (d *Deque[T]) PopBottom() (v T, ok bool) {
	b := d.bottom.Load() - 1
	a := d.arr.Load()
	d.bottom.Store(b)
	t := d.top.Load()

	if t > b {
		// Deque was empty; restore bottom.
		d.bottom.Store(t)
		var zero T
		return zero, false
	}

	v = a.get(b)
	if t != b {
		// More than one element remains; no race with a thief possible.
		return v, true
	}

	// Exactly one element left: race a thief for it via CAS on top.
	if !d.top.CompareAndSwap(t, t+1) {
		// Lost the race; a thief took it.
		d.bottom.Store(t + 1)
		var zero T
		return zero, false
	}
	d.bottom.Store(t + 1)
	return v, true
}

// StealTop removes and returns the element at the top (FIFO end), usable
// concurrently by any number of thieves. ok is false if the deque appeared
// empty or another thief won a race for the last element.
func (d *Deque[T]) StealTop() (v T, ok bool) {
	for {
		t := d.top.Load()
		b := d.bottom.Load()
		if t >= b {
			var zero T
			return zero, false
		}

		a := d.arr.Load()
		v = a.get(t)

		if d.top.CompareAndSwap(t, t+1) {
			return v, true
		}
		// Lost the race (another thief or the owner's pop); retry.
	}
}

// Len returns an approximate size; only exact when no concurrent
// steal/push/pop is in flight. Used by worker loops to decide whether to
// keep attempting steals.
func (d *Deque[T]) Len() int {
	b := d.bottom.Load()
	t := d.top.Load()
	if b < t {
		return 0
	}
	return int(b - t)
}

// IsEmpty reports whether the deque currently has no elements.
func (d *Deque[T]) IsEmpty() bool {
	return d.Len() <= 0
}
