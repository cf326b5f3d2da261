// Package parallel provides data-parallel primitives over slices: a
// parallel map, a parallel prefix scan, a parallel reduce, and an
// order-preserving parallel filter (stream compaction) composed from map,
// scan, and a parallel scatter.
//
// Every primitive decomposes its index range into a binary tree of
// subranges, splitting recursively until a subrange is no larger than a
// grain size, and processes leaf subranges with a sequential loop. The
// grain size is determined by a threshold parameter; see
// parray.ComputeEffectiveThreshold for its interpretation. The contents of
// all outputs are identical for every grain size, provided the supplied
// combiners are truly associative; only the decomposition into parallel
// tasks differs.
//
// Input slices are only read and can be safely shared by all parallel
// tasks. Output slices are written with every index owned by exactly one
// task, so the primitives need no locking. Output slices must be allocated
// by the caller before a primitive is invoked; the only exception is
// Filter, which allocates its result once its length is known.
//
// Primitives whose names start with Err accept operators that can report
// errors. These primitives return exactly one error: when invocations in
// several subranges fail, the left-most error wins. After a failure,
// subranges that have not started yet are abandoned on a best-effort
// basis, and the contents of the output slices are unspecified.
//
// If an operator panics, the corresponding goroutine recovers the panic,
// and the invoking primitive eventually panics with the left-most
// recovered panic value, with stack trace information attached.
package parallel

import (
	"sync"

	"github.com/exascience/parray"
	"github.com/exascience/parray/internal"
)

// join invokes f0 on the calling goroutine and f1 in its own goroutine,
// and returns only when both have terminated. A panic recovered from f1 is
// rethrown on the calling goroutine after the join.
func join(f0, f1 func()) {
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			wg.Done()
		}()
		f1()
	}()
	f0()
	wg.Wait()
	if p != nil {
		panic(p)
	}
}

// errJoin is like join for functions that can report errors. It returns
// the left-most error value that is different from nil.
func errJoin(f0, f1 func() error) error {
	var err1 error
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			wg.Done()
		}()
		err1 = f1()
	}()
	err0 := f0()
	wg.Wait()
	if p != nil {
		panic(p)
	}
	if err0 != nil {
		return err0
	}
	return err1
}

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only when all
// thunks have terminated.
//
// If one or more thunks panic, the corresponding goroutines recover the
// panics, and Do eventually panics with the left-most recovered panic
// value.
func Do(thunks ...parray.Thunk) {
	switch len(thunks) {
	case 0:
		return
	case 1:
		thunks[0]()
		return
	case 2:
		join(thunks[0], thunks[1])
		return
	}
	half := len(thunks) / 2
	join(
		func() { Do(thunks[:half]...) },
		func() { Do(thunks[half:]...) },
	)
}

// ErrDo receives zero or more error-returning thunks and executes them in
// parallel.
//
// Each thunk is invoked in its own goroutine, and ErrDo returns only when
// all thunks have terminated, returning the left-most error value that is
// different from nil.
//
// If one or more thunks panic, the corresponding goroutines recover the
// panics, and ErrDo eventually panics with the left-most recovered panic
// value.
func ErrDo(thunks ...parray.ErrThunk) error {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	case 2:
		return errJoin(thunks[0], thunks[1])
	}
	half := len(thunks) / 2
	return errJoin(
		func() error { return ErrDo(thunks[:half]...) },
		func() error { return ErrDo(thunks[half:]...) },
	)
}
