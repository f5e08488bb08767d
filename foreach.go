// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// The element-wise family: every one of these partitions with
// chunksMinFraction1 and runs the serial equivalent per chunk, with no
// cross-chunk communication. Positions in the output correspond to
// positions in the input; within a single position, exactly one operation
// executes.

func runChunked(n int, body func(first, last int)) {
	if n <= 0 {
		return
	}
	chunks := chunksMinFraction1(n)
	if chunks <= 1 {
		body(0, n)
		return
	}
	p := NewPartition(n, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		body(first, last)
	})
}

// ForEach calls fn(s[i]) for every i, in unspecified order.
func ForEach[T any](s []T, fn func(T)) {
	runChunked(len(s), func(first, last int) {
		for _, v := range s[first:last] {
			fn(v)
		}
	})
}

// ForEachN calls fn(s[i]) for the first n elements of s.
func ForEachN[T any](s []T, n int, fn func(T)) {
	if n > len(s) {
		n = len(s)
	}
	ForEach(s[:n], fn)
}

// Transform writes fn(src[i]) into dst[i] for every i. dst and src may be
// the same slice (in-place transform).
func Transform[S, D any](src []S, dst []D, fn func(S) D) {
	runChunked(len(src), func(first, last int) {
		for i := first; i < last; i++ {
			dst[i] = fn(src[i])
		}
	})
}

// Transform2 writes fn(a[i], b[i]) into dst[i] for every i over the
// shorter of a and b.
func Transform2[A, B, D any](a []A, b []B, dst []D, fn func(A, B) D) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	runChunked(n, func(first, last int) {
		for i := first; i < last; i++ {
			dst[i] = fn(a[i], b[i])
		}
	})
}

// Copy copies src into dst (which must be at least as long as src).
func Copy[T any](src, dst []T) {
	runChunked(len(src), func(first, last int) {
		copy(dst[first:last], src[first:last])
	})
}

// CopyN copies the first n elements of src into dst.
func CopyN[T any](src, dst []T, n int) {
	if n > len(src) {
		n = len(src)
	}
	Copy(src[:n], dst)
}

// Move moves src into dst element-wise, zeroing each source slot after
// it's read. For value types with no nested pointers this behaves like
// Copy; for types holding references it additionally releases the
// source's hold on them.
func Move[T any](src, dst []T) {
	var zero T
	runChunked(len(src), func(first, last int) {
		for i := first; i < last; i++ {
			dst[i] = src[i]
			src[i] = zero
		}
	})
}

// Fill sets every element of s to v.
func Fill[T any](s []T, v T) {
	runChunked(len(s), func(first, last int) {
		for i := first; i < last; i++ {
			s[i] = v
		}
	})
}

// FillN sets the first n elements of s to v.
func FillN[T any](s []T, n int, v T) {
	if n > len(s) {
		n = len(s)
	}
	Fill(s[:n], v)
}

// Generate fills s with successive calls to gen. gen may be invoked
// concurrently from multiple goroutines in unspecified order, an
// intentional relaxation of the serial generate contract. Callers that
// need in-order invocation must use a serial loop instead; gen must be
// safe for concurrent use if Generate goes parallel.
func Generate[T any](s []T, gen func() T) {
	runChunked(len(s), func(first, last int) {
		for i := first; i < last; i++ {
			s[i] = gen()
		}
	})
}

// GenerateN fills the first n elements of s with successive calls to gen,
// with the same concurrent-invocation relaxation as Generate.
func GenerateN[T any](s []T, n int, gen func() T) {
	if n > len(s) {
		n = len(s)
	}
	Generate(s[:n], gen)
}

// SwapRanges exchanges a[i] and b[i] for every i over the shorter of a
// and b.
func SwapRanges[T any](a, b []T) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	runChunked(n, func(first, last int) {
		for i := first; i < last; i++ {
			a[i], b[i] = b[i], a[i]
		}
	})
}

// AdjacentDifference writes dst[0] = src[0], dst[i] = op(src[i],
// src[i-1]) for i>0. The first output is written serially before the
// parallel pass; chunks then read (in[k], in[k-1]) and write out[k].
func AdjacentDifference[T any](src, dst []T, op func(cur, prev T) T) {
	n := len(src)
	if n == 0 {
		return
	}
	dst[0] = src[0]
	if n == 1 {
		return
	}
	runChunked(n-1, func(first, last int) {
		for i := first; i < last; i++ {
			dst[i+1] = op(src[i+1], src[i])
		}
	})
}

// Replace sets s[i] = newVal wherever s[i] == oldVal.
func Replace[T comparable](s []T, oldVal, newVal T) {
	ReplaceIf(s, func(v T) bool { return v == oldVal }, newVal)
}

// ReplaceIf sets s[i] = newVal wherever pred(s[i]) is true.
func ReplaceIf[T any](s []T, pred func(T) bool, newVal T) {
	runChunked(len(s), func(first, last int) {
		for i := first; i < last; i++ {
			if pred(s[i]) {
				s[i] = newVal
			}
		}
	})
}

// Reverse reverses s in place using two matched partitions, one walking
// forward from the start and one walking backward from the end, each
// chunk swapping its paired elements, meeting in the middle.
func Reverse[T any](s []T) {
	n := len(s)
	if n < 2 {
		return
	}
	half := n / 2
	chunks := chunksMinFraction1(half)
	if chunks <= 1 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			s[i], s[j] = s[j], s[i]
		}
		return
	}
	p := NewPartition(half, chunks)
	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		for k := first; k < last; k++ {
			j := n - 1 - k
			s[k], s[j] = s[j], s[k]
		}
	})
}
