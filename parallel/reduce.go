package parallel

import (
	"sync/atomic"

	"github.com/exascience/parray"
)

// Reduce computes the left-to-right fold of identity with all elements of
// in under combine, without writing any prefixes. For a sequence of length
// zero, it returns the identity. The result equals the total returned by
// Scan over the same input, for every threshold value.
//
// See ScanFrom for the preconditions on combine and identity.
//
// If one or more invocations of combine panic, the corresponding
// goroutines recover the panics, and Reduce eventually panics with the
// left-most recovered panic value.
func Reduce[T any](in []T, identity T, combine parray.Combiner[T], threshold int) T {
	n := len(in)
	if n == 0 {
		return identity
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var recur func(parray.Range) T
	recur = func(r parray.Range) T {
		if r.Leaf() {
			sum := identity
			for i := r.Low; i < r.High; i++ {
				sum = combine(sum, in[i])
			}
			return sum
		}
		left, right := r.Split()
		var leftSum, rightSum T
		join(
			func() { leftSum = recur(left) },
			func() { rightSum = recur(right) },
		)
		return combine(leftSum, rightSum)
	}
	return recur(parray.NewRange(0, n, grain))
}

// ErrReduce is like Reduce for a combiner that can report an error.
//
// ErrReduce returns only when all invocations of combine have terminated,
// returning the left-most error value that is different from nil. After a
// failed invocation, subranges that have not started yet are abandoned on
// a best-effort basis, and the returned total is the zero value of the
// element type.
func ErrReduce[T any](in []T, identity T, combine parray.ErrCombiner[T], threshold int) (T, error) {
	n := len(in)
	if n == 0 {
		return identity, nil
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var stop atomic.Bool
	var recur func(parray.Range) (T, error)
	recur = func(r parray.Range) (sum T, err error) {
		if r.Leaf() {
			if stop.Load() {
				return
			}
			sum = identity
			for i := r.Low; i < r.High; i++ {
				sum, err = combine(sum, in[i])
				if err != nil {
					stop.Store(true)
					return
				}
			}
			return
		}
		left, right := r.Split()
		var leftSum, rightSum T
		err = errJoin(
			func() (e error) { leftSum, e = recur(left); return },
			func() (e error) { rightSum, e = recur(right); return },
		)
		if err != nil {
			return
		}
		if stop.Load() {
			// A leaf elsewhere has failed; these summaries are abandoned.
			return
		}
		sum, err = combine(leftSum, rightSum)
		if err != nil {
			stop.Store(true)
		}
		return
	}
	total, err := recur(parray.NewRange(0, n, grain))
	if err != nil {
		var zero T
		return zero, err
	}
	return total, nil
}
