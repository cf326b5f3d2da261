package parallel

import (
	"fmt"

	"github.com/exascience/parray"
)

// Scatter copies the selected elements of in into out: for every index i
// with mask[i] true, it stores in[i] at out[index[i]-1]. Indices with a
// false mask write nothing. The index range is divided into subranges
// according to the threshold parameter and processed in parallel.
//
// Scatter requires index to be a monotonic running count of the true
// values in mask, as produced by scanning mask with addition: for any two
// selected indices i < j, index[i] < index[j]. Under this precondition no
// two tasks ever write the same position of out, so the scatter needs no
// synchronization, and the selected elements appear in out in their
// original relative order.
//
// Scatter panics if the lengths of mask, index, and in differ, before any
// parallel work is started.
func Scatter[T any](out, in []T, mask []bool, index []int, threshold int) {
	n := len(in)
	if (len(mask) != n) || (len(index) != n) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v input, %v mask, %v index", n, len(mask), len(index)))
	}
	if n == 0 {
		return
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var recur func(parray.Range)
	recur = func(r parray.Range) {
		if r.Leaf() {
			for i := r.Low; i < r.High; i++ {
				if mask[i] {
					out[index[i]-1] = in[i]
				}
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

func add(x, y int) int { return x + y }

func fromBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Filter returns a newly allocated slice containing exactly the elements
// of in for which pred returns true, in their original relative order.
//
// Filter is a composition of three parallel passes: Map applies the
// predicate to produce a boolean mask, ScanFrom computes the running count
// of selected elements (which simultaneously yields the target position of
// every selected element and, as the total, the length of the result), and
// Scatter moves the selected elements into place. There is no sequential
// fallback; all three passes are divided into subranges according to the
// threshold parameter.
//
// pred must be free of side effects other than its return value.
//
// If one or more invocations of pred panic, the corresponding goroutines
// recover the panics, and Filter eventually panics with the left-most
// recovered panic value.
func Filter[T any](in []T, pred parray.Predicate[T], threshold int) []T {
	n := len(in)
	mask := make([]bool, n)
	Map(mask, in, parray.MapFunc[T, bool](pred), threshold)
	index := make([]int, n)
	total := ScanFrom(index, mask, 0, add, fromBool, threshold)
	out := make([]T, total)
	Scatter(out, in, mask, index, threshold)
	return out
}

// ErrFilter is like Filter for a predicate that can report an error.
//
// ErrFilter returns only when all invocations of pred have terminated.
// When one or more invocations fail, it returns a nil slice and the
// left-most error value that is different from nil, and invocations in
// subranges that have not started yet are abandoned on a best-effort
// basis.
func ErrFilter[T any](in []T, pred parray.ErrPredicate[T], threshold int) ([]T, error) {
	n := len(in)
	mask := make([]bool, n)
	if err := ErrMap(mask, in, parray.ErrMapFunc[T, bool](pred), threshold); err != nil {
		return nil, err
	}
	index := make([]int, n)
	total := ScanFrom(index, mask, 0, add, fromBool, threshold)
	out := make([]T, total)
	Scatter(out, in, mask, index, threshold)
	return out, nil
}
