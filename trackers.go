// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"math"
	"sync"
	"sync/atomic"
)

// indexTracker is the lock-free winner tracker used by every
// find/search/adjacent_find/is_sorted_until/mismatch/lexicographical_compare
// call over a slice: a position in a slice is a plain int, a trivially
// copyable word-sized value, so chunk index and reported position are
// packed into a single atomic word and updated with one CAS. No mutex is
// ever needed.
type indexTracker struct {
	word  atomic.Int64
	lower bool // true: lower chunk index wins (Min); false: higher wins (Max)
}

const noChunk = math.MaxInt32

func pack(chunk, value int32) int64 {
	return int64(uint64(uint32(chunk))<<32 | uint64(uint32(value)))
}

func unpack(word int64) (chunk, value int32) {
	u := uint64(word)
	return int32(u >> 32), int32(uint32(u))
}

// newMinIndexTracker returns a tracker where the lowest-chunk writer wins.
// Ties are impossible because each chunk reports at most one winning
// position, giving "find first" semantics.
func newMinIndexTracker() *indexTracker {
	t := &indexTracker{lower: true}
	t.word.Store(pack(noChunk, 0))
	return t
}

// newMaxIndexTracker returns a tracker where the highest-chunk writer wins,
// used for "find last" semantics (find_end).
func newMaxIndexTracker() *indexTracker {
	t := &indexTracker{lower: false}
	t.word.Store(pack(-noChunk-1, 0))
	return t
}

// Beaten reports whether some chunk at least as good as chunk has already
// published, letting a worker whose chunk index is already worse than the
// best-known chunk skip its remaining scan.
func (t *indexTracker) Beaten(chunk int) bool {
	cur, _ := unpack(t.word.Load())
	if t.lower {
		return int(cur) <= chunk
	}
	return int(cur) >= chunk
}

// Report attempts to publish (chunk, value) as the new winner. It is a
// plain CAS loop; no mutex is involved.
func (t *indexTracker) Report(chunk, value int) {
	c32, v32 := int32(chunk), int32(value)
	for {
		cur := t.word.Load()
		curChunk, _ := unpack(cur)
		if t.lower {
			if int(curChunk) <= chunk {
				return
			}
		} else {
			if int(curChunk) >= chunk {
				return
			}
		}
		if t.word.CompareAndSwap(cur, pack(c32, v32)) {
			return
		}
	}
}

// Result returns the winning value and whether any chunk reported one.
func (t *indexTracker) Result() (value int, ok bool) {
	chunk, v := unpack(t.word.Load())
	if t.lower {
		return int(v), chunk != noChunk
	}
	return int(v), chunk != -noChunk-1
}

// cursorTracker is the mutex-guarded counterpart to indexTracker, used
// whenever the tracked payload isn't a plain int (e.g. the matching value
// found in a forward-only iter.Seq, which can't be packed into an atomic
// word). The chunk-index atomic is still updated first via CAS
// to keep the fast "am I already beaten?" check lock-free; only the
// actual payload write is guarded by a mutex: CAS the chunk index first,
// and if that wins, take the lock, re-check the chunk index under it, and
// only then store the value.
type cursorTracker[T any] struct {
	chunkAtomic atomic.Int64
	lower       bool

	mu    sync.Mutex
	chunk int64
	value T
	found bool
}

func newMinCursorTracker[T any]() *cursorTracker[T] {
	t := &cursorTracker[T]{lower: true}
	t.chunkAtomic.Store(math.MaxInt64)
	return t
}

func newMaxCursorTracker[T any]() *cursorTracker[T] {
	t := &cursorTracker[T]{lower: false}
	t.chunkAtomic.Store(math.MinInt64)
	return t
}

func (t *cursorTracker[T]) Beaten(chunk int64) bool {
	cur := t.chunkAtomic.Load()
	if t.lower {
		return cur <= chunk
	}
	return cur >= chunk
}

func (t *cursorTracker[T]) Report(chunk int64, value T) {
	for {
		cur := t.chunkAtomic.Load()
		if t.lower && cur <= chunk {
			return
		}
		if !t.lower && cur >= chunk {
			return
		}
		if t.chunkAtomic.CompareAndSwap(cur, chunk) {
			break
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check: another, even-better writer may have raced ahead between
	// our CAS and acquiring the lock.
	if t.chunkAtomic.Load() == chunk {
		t.chunk = chunk
		t.value = value
		t.found = true
	}
}

func (t *cursorTracker[T]) Result() (value T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.found
}
