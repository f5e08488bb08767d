// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// UninitializedDefaultConstruct writes gen() into every slot of dst.
// Go slices start zero-valued, so this is simply a parallel fill driven
// by a generator, the same way Generate is, kept as a distinct entry
// point because callers porting construct/destroy pairs expect one.
func UninitializedDefaultConstruct[T any](dst []T, gen func() T) {
	runChunked(len(dst), func(first, last int) {
		for i := first; i < last; i++ {
			dst[i] = gen()
		}
	})
}

// UninitializedDefaultConstructN writes gen() into the first n slots of
// dst.
func UninitializedDefaultConstructN[T any](dst []T, n int, gen func() T) {
	if n > len(dst) {
		n = len(dst)
	}
	UninitializedDefaultConstruct(dst[:n], gen)
}

// UninitializedValueConstruct writes the zero value of T into every slot
// of dst.
func UninitializedValueConstruct[T any](dst []T) {
	var zero T
	runChunked(len(dst), func(first, last int) {
		for i := first; i < last; i++ {
			dst[i] = zero
		}
	})
}

// UninitializedValueConstructN writes the zero value of T into the first
// n slots of dst.
func UninitializedValueConstructN[T any](dst []T, n int) {
	if n > len(dst) {
		n = len(dst)
	}
	UninitializedValueConstruct(dst[:n])
}

// UninitializedCopy copies src into dst element-wise; equivalent to Copy,
// kept distinct so callers porting a construct/destroy pair have a
// matching name.
func UninitializedCopy[T any](src, dst []T) {
	Copy(src, dst)
}

// UninitializedCopyN copies the first n elements of src into dst.
func UninitializedCopyN[T any](src, dst []T, n int) {
	CopyN(src, dst, n)
}

// UninitializedMove moves src into dst element-wise, zeroing each source
// slot after it is read; equivalent to Move.
func UninitializedMove[T any](src, dst []T) {
	Move(src, dst)
}

// UninitializedMoveN moves the first n elements of src into dst, zeroing
// each source slot after it is read.
func UninitializedMoveN[T any](src, dst []T, n int) {
	if n > len(src) {
		n = len(src)
	}
	Move(src[:n], dst)
}

// UninitializedFill sets every slot of dst to v; equivalent to Fill.
func UninitializedFill[T any](dst []T, v T) {
	Fill(dst, v)
}

// UninitializedFillN sets the first n slots of dst to v.
func UninitializedFillN[T any](dst []T, n int, v T) {
	FillN(dst, n, v)
}

// Destroy invokes destroy on every element of s, in unspecified order,
// then zeroes the slot. destroy is the parallel equivalent of a C++
// destructor call; for plain value types with no held resources it is a
// no-op, and Destroy need not be called at all.
func Destroy[T any](s []T, destroy func(*T)) {
	var zero T
	runChunked(len(s), func(first, last int) {
		for i := first; i < last; i++ {
			destroy(&s[i])
			s[i] = zero
		}
	})
}

// DestroyN invokes destroy on the first n elements of s, then zeroes
// each destroyed slot.
func DestroyN[T any](s []T, n int, destroy func(*T)) {
	if n > len(s) {
		n = len(s)
	}
	Destroy(s[:n], destroy)
}
