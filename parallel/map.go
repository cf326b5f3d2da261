package parallel

import (
	"fmt"
	"sync/atomic"

	"github.com/exascience/parray"
)

// Map applies f to every element of in and stores the result in the
// corresponding position of out, so that out[i] == f(in[i]) for every
// index. The index range is divided into subranges according to the
// threshold parameter, leaf subranges are processed by sequential loops,
// and larger subranges are split and processed in parallel.
//
// The contents of out are identical for every threshold value; only the
// order in time in which elements are computed differs. f must be free of
// side effects other than its return value.
//
// Map panics if the lengths of out and in differ, before any parallel
// work is started.
//
// If one or more invocations of f panic, the corresponding goroutines
// recover the panics, and Map eventually panics with the left-most
// recovered panic value.
func Map[T, U any](out []U, in []T, f parray.MapFunc[T, U], threshold int) {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	n := len(in)
	if n == 0 {
		return
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var recur func(parray.Range)
	recur = func(r parray.Range) {
		if r.Leaf() {
			for i := r.Low; i < r.High; i++ {
				out[i] = f(in[i])
			}
			return
		}
		left, right := r.Split()
		join(
			func() { recur(left) },
			func() { recur(right) },
		)
	}
	recur(parray.NewRange(0, n, grain))
}

// ErrMap is like Map for a map function that can report an error.
//
// ErrMap returns only when all invocations of f have terminated, returning
// the left-most error value that is different from nil. After a failed
// invocation, leaf subranges that have not started yet are abandoned on a
// best-effort basis, and the contents of out are unspecified.
//
// ErrMap panics if the lengths of out and in differ, before any parallel
// work is started.
func ErrMap[T, U any](out []U, in []T, f parray.ErrMapFunc[T, U], threshold int) error {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	n := len(in)
	if n == 0 {
		return nil
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var stop atomic.Bool
	var recur func(parray.Range) error
	recur = func(r parray.Range) error {
		if r.Leaf() {
			if stop.Load() {
				return nil
			}
			for i := r.Low; i < r.High; i++ {
				u, err := f(in[i])
				if err != nil {
					stop.Store(true)
					return err
				}
				out[i] = u
			}
			return nil
		}
		left, right := r.Split()
		return errJoin(
			func() error { return recur(left) },
			func() error { return recur(right) },
		)
	}
	return recur(parray.NewRange(0, n, grain))
}
