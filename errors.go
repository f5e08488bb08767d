// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pstld

import (
	"errors"
	"fmt"
)

// pstldError wraps an error raised from a user callable (comparator,
// transform, predicate, generator, constructor/destructor) with the
// operation name and input size. It is built by wrapCallbackError;
// TaskGroup.Wait and ParallelFor do not use it and re-raise a recovered
// panic value unwrapped.
type pstldError struct {
	Op  string // algorithm that was running, e.g. "sort", "transform_reduce"
	N   int    // length of the range being processed
	Err error  // the panic/error recovered from the user callable
}

func (e *pstldError) Error() string {
	return fmt.Sprintf("pstld: %s over %d elements: %v", e.Op, e.N, e.Err)
}

func (e *pstldError) Unwrap() error {
	return e.Err
}

// ErrParallelismUnavailable is the library's single internal failure kind.
// It is raised only from allocation points inside the fabric and partition
// machinery: growing a deque's array, allocating a ForwardPartition's
// chunk table, or allocating per-chunk result slots. Starting a goroutine
// has no failure path, so worker spawning never raises it.
// Every parallel entry point recovers it internally and falls back to the
// serial algorithm; it is never returned to a caller.
var ErrParallelismUnavailable = errors.New("pstld: parallelism unavailable")

// wrapCallbackError wraps a value recovered from a user callable with the
// operation name and range length.
func wrapCallbackError(op string, n int, err error) error {
	if err == nil {
		return nil
	}
	return &pstldError{Op: op, N: n, Err: err}
}
