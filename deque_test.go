// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"math/rand"
	"sync"
	"testing"
)

func TestDequeOwnerOnly(t *testing.T) {
	d := NewDeque[int](4)
	for i := 0; i < 20; i++ {
		if err := d.PushBottom(i); err != nil {
			t.Fatalf("PushBottom: %v", err)
		}
	}
	var got []int
	for {
		v, ok := d.PopBottom()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 20 {
		t.Fatalf("popped %d values, want 20", len(got))
	}
	// Owner-only push/pop is LIFO.
	for i, v := range got {
		want := 19 - i
		if v != want {
			t.Fatalf("got[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestDequeEmptyPop(t *testing.T) {
	d := NewDeque[int](4)
	if _, ok := d.PopBottom(); ok {
		t.Fatal("PopBottom on empty deque returned ok=true")
	}
	if _, ok := d.StealTop(); ok {
		t.Fatal("StealTop on empty deque returned ok=true")
	}
}

func TestDequeConcurrentOwnerAndThieves(t *testing.T) {
	const n = 5000
	const thieves = 8

	d := NewDeque[int](16)
	for i := 0; i < n; i++ {
		if err := d.PushBottom(i); err != nil {
			t.Fatalf("PushBottom: %v", err)
		}
	}

	var mu sync.Mutex
	seen := make(map[int]int)
	record := func(v int) {
		mu.Lock()
		seen[v]++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < thieves; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(i) + 1))
			for {
				v, ok := d.StealTop()
				if !ok {
					if d.IsEmpty() {
						return
					}
					continue
				}
				record(v)
				_ = r.Intn(1)
			}
		}()
	}

	for {
		v, ok := d.PopBottom()
		if !ok {
			if d.IsEmpty() {
				break
			}
			continue
		}
		record(v)
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("distinct values returned = %d, want %d", len(seen), n)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("value %d returned %d times, want 1", v, count)
		}
	}
}

func TestDequeGrows(t *testing.T) {
	d := NewDeque[int](1)
	for i := 0; i < 1000; i++ {
		if err := d.PushBottom(i); err != nil {
			t.Fatalf("PushBottom: %v", err)
		}
	}
	if d.Len() != 1000 {
		t.Fatalf("Len() = %d, want 1000", d.Len())
	}
	for i := 999; i >= 0; i-- {
		v, ok := d.PopBottom()
		if !ok || v != i {
			t.Fatalf("PopBottom() = (%d, %v), want (%d, true)", v, ok, i)
		}
	}
}
