// Package sequential provides sequential implementations of the
// operations provided by the parallel package. This is useful for testing
// and debugging, and as baselines when benchmarking the parallel
// implementations.
//
// The implementations here are straightforward loops. Because all
// operators accepted by this library are required to be associative and
// free of side effects, the values computed here are exactly the values
// the parallel package computes, for every threshold value. The threshold
// parameters are accepted for signature compatibility and ignored.
//
// It is not recommended to use the implementations of this package for any
// other purpose, because a plain loop written in place is just as clear.
package sequential

import (
	"fmt"

	"github.com/exascience/parray"
)

// Do receives zero or more thunks and executes them sequentially.
func Do(thunks ...parray.Thunk) {
	for _, thunk := range thunks {
		thunk()
	}
}

// ErrDo receives zero or more error-returning thunks and executes them
// sequentially, returning the left-most error value that is different from
// nil. Thunks after a failed thunk are not invoked.
func ErrDo(thunks ...parray.ErrThunk) error {
	for _, thunk := range thunks {
		if err := thunk(); err != nil {
			return err
		}
	}
	return nil
}

// Map applies f to every element of in and stores the result in the
// corresponding position of out, in index order.
//
// Map panics if the lengths of out and in differ.
func Map[T, U any](out []U, in []T, f parray.MapFunc[T, U], threshold int) {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	for i, x := range in {
		out[i] = f(x)
	}
}

// ErrMap is like Map for a map function that can report an error. It
// returns the first error reported by f, and does not invoke f on any
// further elements afterwards.
func ErrMap[T, U any](out []U, in []T, f parray.ErrMapFunc[T, U], threshold int) error {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	for i, x := range in {
		u, err := f(x)
		if err != nil {
			return err
		}
		out[i] = u
	}
	return nil
}

// ScanFrom computes the inclusive prefix reduction of in under combine
// with a single left-to-right loop, storing the running fold in out at
// every index and returning the fold over the whole sequence. Every input
// element is converted by from before it is combined.
//
// ScanFrom panics if the lengths of out and in differ.
func ScanFrom[T, A any](out []A, in []T, identity A, combine parray.Combiner[A], from parray.MapFunc[T, A], threshold int) A {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	sum := identity
	for i, x := range in {
		sum = combine(sum, from(x))
		out[i] = sum
	}
	return sum
}

// Scan computes the inclusive prefix reduction of in under combine with a
// single left-to-right loop, storing the running fold in out at every
// index and returning the fold over the whole sequence.
//
// Scan panics if the lengths of out and in differ.
func Scan[T any](out, in []T, identity T, combine parray.Combiner[T], threshold int) T {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	sum := identity
	for i, x := range in {
		sum = combine(sum, x)
		out[i] = sum
	}
	return sum
}

// ErrScanFrom is like ScanFrom for operators that can report errors. It
// returns the first error reported by combine or from, together with the
// zero value of the accumulation type, and does not invoke either operator
// afterwards.
func ErrScanFrom[T, A any](out []A, in []T, identity A, combine parray.ErrCombiner[A], from parray.ErrMapFunc[T, A], threshold int) (A, error) {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	var zero A
	sum := identity
	for i, x := range in {
		a, err := from(x)
		if err != nil {
			return zero, err
		}
		sum, err = combine(sum, a)
		if err != nil {
			return zero, err
		}
		out[i] = sum
	}
	return sum, nil
}

// ErrScan is like Scan for a combiner that can report an error. See
// ErrScanFrom for the error semantics.
func ErrScan[T any](out, in []T, identity T, combine parray.ErrCombiner[T], threshold int) (T, error) {
	return ErrScanFrom(out, in, identity, combine, func(x T) (T, error) { return x, nil }, threshold)
}

// Reduce computes the left-to-right fold of identity with all elements of
// in under combine.
func Reduce[T any](in []T, identity T, combine parray.Combiner[T], threshold int) T {
	sum := identity
	for _, x := range in {
		sum = combine(sum, x)
	}
	return sum
}

// ErrReduce is like Reduce for a combiner that can report an error. It
// returns the first error reported by combine, together with the zero
// value of the element type, and does not invoke combine afterwards.
func ErrReduce[T any](in []T, identity T, combine parray.ErrCombiner[T], threshold int) (T, error) {
	sum := identity
	for _, x := range in {
		var err error
		sum, err = combine(sum, x)
		if err != nil {
			var zero T
			return zero, err
		}
	}
	return sum, nil
}

// Scatter copies the selected elements of in into out, in index order: for
// every index i with mask[i] true, it stores in[i] at out[index[i]-1].
//
// Scatter panics if the lengths of mask, index, and in differ.
func Scatter[T any](out, in []T, mask []bool, index []int, threshold int) {
	n := len(in)
	if (len(mask) != n) || (len(index) != n) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v input, %v mask, %v index", n, len(mask), len(index)))
	}
	for i := 0; i < n; i++ {
		if mask[i] {
			out[index[i]-1] = in[i]
		}
	}
}

// Filter returns a newly allocated slice containing exactly the elements
// of in for which pred returns true, in their original relative order. It
// performs the same map, scan, and scatter passes as the parallel Filter,
// each as a sequential loop.
func Filter[T any](in []T, pred parray.Predicate[T], threshold int) []T {
	n := len(in)
	mask := make([]bool, n)
	Map(mask, in, parray.MapFunc[T, bool](pred), threshold)
	index := make([]int, n)
	total := ScanFrom(index, mask, 0,
		func(x, y int) int { return x + y },
		func(b bool) int {
			if b {
				return 1
			}
			return 0
		}, threshold)
	out := make([]T, total)
	Scatter(out, in, mask, index, threshold)
	return out
}

// ErrFilter is like Filter for a predicate that can report an error. It
// returns a nil slice and the first error reported by pred, and does not
// invoke pred on any further elements afterwards.
func ErrFilter[T any](in []T, pred parray.ErrPredicate[T], threshold int) ([]T, error) {
	n := len(in)
	mask := make([]bool, n)
	if err := ErrMap(mask, in, parray.ErrMapFunc[T, bool](pred), threshold); err != nil {
		return nil, err
	}
	index := make([]int, n)
	total := ScanFrom(index, mask, 0,
		func(x, y int) int { return x + y },
		func(b bool) int {
			if b {
				return 1
			}
			return 0
		}, threshold)
	out := make([]T, total)
	Scatter(out, in, mask, index, threshold)
	return out, nil
}
