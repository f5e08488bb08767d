// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

// TransformReduce folds s left-to-right: result = reduce(reduce(reduce(init,
// transform(s[0])), transform(s[1])), ...). reduce is assumed associative
// but NOT assumed commutative: within a chunk, and during the final fold
// across chunks, elements are combined strictly left to right, so
// TransformReduce gives the identical answer a plain serial fold would
// for operators like string concatenation.
func TransformReduce[S, A any](s []S, init A, reduce func(A, A) A, transform func(S) A) A {
	n := len(s)
	if n == 0 {
		return init
	}

	chunks := chunksMinFraction2(n)
	if chunks <= 1 {
		return transformReduceSerial(s, init, reduce, transform)
	}

	p := NewPartition(n, chunks)
	locals, err := tryMake[A]("transform_reduce.locals", p.Chunks())
	if err != nil {
		return transformReduceSerial(s, init, reduce, transform)
	}

	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		chunk := s[first:last]
		acc := transform(chunk[0])
		for _, v := range chunk[1:] {
			acc = reduce(acc, transform(v))
		}
		locals[i] = acc
	})

	result := init
	for _, v := range locals {
		result = reduce(result, v)
	}
	return result
}

func transformReduceSerial[S, A any](s []S, init A, reduce func(A, A) A, transform func(S) A) A {
	acc := init
	for _, v := range s {
		acc = reduce(acc, transform(v))
	}
	return acc
}

// TransformReduce2 is the two-range variant of TransformReduce: it folds
// reduce(acc, transform(a[i], b[i])) for matching indices of a and b, over
// the shorter of the two ranges' lengths.
func TransformReduce2[A, B, R any](a []A, b []B, init R, reduce func(R, R) R, transform func(A, B) R) R {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return init
	}

	chunks := chunksMinFraction2(n)
	if chunks <= 1 {
		return transformReduce2Serial(a[:n], b[:n], init, reduce, transform)
	}

	p := NewPartition(n, chunks)
	locals, err := tryMake[R]("transform_reduce2.locals", p.Chunks())
	if err != nil {
		return transformReduce2Serial(a[:n], b[:n], init, reduce, transform)
	}

	ParallelFor(p.Chunks(), func(i int) {
		first, last := p.At(i)
		acc := transform(a[first], b[first])
		for j := first + 1; j < last; j++ {
			acc = reduce(acc, transform(a[j], b[j]))
		}
		locals[i] = acc
	})

	result := init
	for _, v := range locals {
		result = reduce(result, v)
	}
	return result
}

func transformReduce2Serial[A, B, R any](a []A, b []B, init R, reduce func(R, R) R, transform func(A, B) R) R {
	acc := init
	for i := range a {
		acc = reduce(acc, transform(a[i], b[i]))
	}
	return acc
}

// Reduce folds s with op, seeded with init: TransformReduce with an
// identity transform.
func Reduce[T any](s []T, init T, op func(T, T) T) T {
	return TransformReduce(s, init, op, func(v T) T { return v })
}

// Sum is the common case of Reduce with op = "+", expressed over any
// numeric type via the constraint below.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum returns Reduce(s, 0, +).
func Sum[T Numeric](s []T) T {
	var zero T
	return Reduce(s, zero, func(a, b T) T { return a + b })
}
