// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

func TestMergeDisjointExample(t *testing.T) {
	a := []int{1, 3, 5, 7}
	b := []int{2, 4, 6, 8}
	dst := make([]int, len(a)+len(b))
	Merge(a, b, dst, func(x, y int) bool { return x < y })
	want := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if !reflect.DeepEqual(dst, want) {
		t.Fatalf("Merge = %v, want %v", dst, want)
	}
}

type taggedValue struct {
	v    int
	from string
}

func TestMergeStability(t *testing.T) {
	a := []taggedValue{{1, "a"}, {2, "a"}, {2, "a"}, {3, "a"}}
	b := []taggedValue{{2, "b"}, {2, "b"}, {4, "b"}}
	dst := make([]taggedValue, len(a)+len(b))
	Merge(a, b, dst, func(x, y taggedValue) bool { return x.v < y.v })

	want := []taggedValue{
		{1, "a"}, {2, "a"}, {2, "a"}, {2, "b"}, {2, "b"}, {3, "a"}, {4, "b"},
	}
	if !reflect.DeepEqual(dst, want) {
		t.Fatalf("Merge stability: got %v, want %v", dst, want)
	}
}

func TestMergeLargeRandomMatchesSerial(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	n1, n2 := 150000, 130000
	a := make([]int, n1)
	b := make([]int, n2)
	for i := range a {
		a[i] = r.Intn(1000)
	}
	for i := range b {
		b[i] = r.Intn(1000)
	}
	sort.Ints(a)
	sort.Ints(b)

	dst := make([]int, n1+n2)
	Merge(a, b, dst, func(x, y int) bool { return x < y })

	want := append(append([]int(nil), a...), b...)
	sort.Ints(want)
	if !reflect.DeepEqual(dst, want) {
		t.Fatal("Merge result does not match sorted concatenation")
	}
}

func TestMergeEmptyInputs(t *testing.T) {
	dst := make([]int, 3)
	Merge([]int{}, []int{1, 2, 3}, dst, func(x, y int) bool { return x < y })
	if !reflect.DeepEqual(dst, []int{1, 2, 3}) {
		t.Fatalf("Merge(empty, b) = %v, want [1 2 3]", dst)
	}
}

func TestMergeAllocFailureFallsBack(t *testing.T) {
	old := injectAllocFailure
	defer func() { injectAllocFailure = old }()
	injectAllocFailure = func(site string) bool { return true }

	r := rand.New(rand.NewSource(6))
	n1, n2 := 20000, 18000
	a := make([]int, n1)
	b := make([]int, n2)
	for i := range a {
		a[i] = r.Intn(500)
	}
	for i := range b {
		b[i] = r.Intn(500)
	}
	sort.Ints(a)
	sort.Ints(b)

	dst := make([]int, n1+n2)
	Merge(a, b, dst, func(x, y int) bool { return x < y })

	want := append(append([]int(nil), a...), b...)
	sort.Ints(want)
	if !reflect.DeepEqual(dst, want) {
		t.Fatal("Merge under allocation failure did not match sorted concatenation")
	}
}
