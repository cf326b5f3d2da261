package parallel

import (
	"fmt"
	"sync/atomic"

	"github.com/exascience/parray"
)

// A scanNode records the summary computed for one subrange during the
// upsweep pass of a scan, together with the subtree structure, so that the
// downsweep pass can hand every subrange the combination of everything
// strictly to its left. Leaf nodes have no children.
type scanNode[A any] struct {
	r           parray.Range
	sum         A
	left, right *scanNode[A]
}

// upsweep recursively splits r into a binary tree of subranges and
// computes a summary for each of them, bottom-up. A leaf folds its
// elements sequentially starting from the identity; an interior node
// combines the summaries of its two children once both are available.
func upsweep[T, A any](r parray.Range, in []T, identity A, combine parray.Combiner[A], from parray.MapFunc[T, A]) *scanNode[A] {
	node := &scanNode[A]{r: r}
	if r.Leaf() {
		sum := identity
		for i := r.Low; i < r.High; i++ {
			sum = combine(sum, from(in[i]))
		}
		node.sum = sum
		return node
	}
	left, right := r.Split()
	join(
		func() { node.left = upsweep(left, in, identity, combine, from) },
		func() { node.right = upsweep(right, in, identity, combine, from) },
	)
	node.sum = combine(node.left.sum, node.right.sum)
	return node
}

// downsweep propagates incoming prefixes top-down through the tree built
// by upsweep. A node passes its own prefix to its left child, and the
// combination of its prefix with the left child's summary to its right
// child. A leaf folds its elements sequentially starting from its prefix,
// this time writing the running fold to out at every index. This is the
// only pass that writes to out.
func downsweep[T, A any](node *scanNode[A], out []A, in []T, prefix A, combine parray.Combiner[A], from parray.MapFunc[T, A]) {
	if node.left == nil {
		sum := prefix
		for i := node.r.Low; i < node.r.High; i++ {
			sum = combine(sum, from(in[i]))
			out[i] = sum
		}
		return
	}
	join(
		func() { downsweep(node.left, out, in, prefix, combine, from) },
		func() { downsweep(node.right, out, in, combine(prefix, node.left.sum), combine, from) },
	)
}

// ScanFrom computes the inclusive prefix reduction of in under combine and
// stores it in out, so that out[i] is the left-to-right fold of identity
// with in[0] through in[i], each converted by from. It returns the fold
// over the whole sequence. For a sequence of length zero, it returns the
// identity and does not touch out.
//
// The from function converts an input element to the accumulation type,
// for example a boolean to a count; use Scan when input and accumulation
// types coincide.
//
// The scan runs in two passes over a binary tree of subranges: a bottom-up
// pass that computes a summary per subrange, and a top-down pass that
// hands every subrange the combination of everything strictly to its left
// before it folds its own elements into out. This is what allows the scan
// to run with full parallelism while producing exactly the prefix folds a
// sequential loop would produce, for every threshold value.
//
// combine must be associative and identity must satisfy
// combine(identity, x) == x for all reachable x; neither property is
// checked at runtime, and scanning with a combiner that violates them
// produces incorrect results. Commutativity is not required. combine and
// from must be free of side effects; the order in which they are invoked
// is not deterministic.
//
// ScanFrom panics if the lengths of out and in differ, before any
// parallel work is started.
//
// If one or more invocations of combine or from panic, the corresponding
// goroutines recover the panics, and ScanFrom eventually panics with the
// left-most recovered panic value.
func ScanFrom[T, A any](out []A, in []T, identity A, combine parray.Combiner[A], from parray.MapFunc[T, A], threshold int) A {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	n := len(in)
	if n == 0 {
		return identity
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	root := upsweep(parray.NewRange(0, n, grain), in, identity, combine, from)
	downsweep(root, out, in, identity, combine, from)
	return root.sum
}

// Scan computes the inclusive prefix reduction of in under combine and
// stores it in out, so that out[i] is the left-to-right fold of identity
// with in[0] through in[i]. It returns the fold over the whole sequence.
// See ScanFrom for the preconditions on combine and identity, and for a
// description of the two-pass algorithm.
func Scan[T any](out, in []T, identity T, combine parray.Combiner[T], threshold int) T {
	return ScanFrom(out, in, identity, combine, func(x T) T { return x }, threshold)
}

// errUpsweep is like upsweep for operators that can report errors. After
// a failure, the summaries in the affected subtree are meaningless and
// must not be used.
func errUpsweep[T, A any](r parray.Range, in []T, identity A, combine parray.ErrCombiner[A], from parray.ErrMapFunc[T, A], stop *atomic.Bool) (*scanNode[A], error) {
	node := &scanNode[A]{r: r}
	if r.Leaf() {
		if stop.Load() {
			return node, nil
		}
		sum := identity
		for i := r.Low; i < r.High; i++ {
			x, err := from(in[i])
			if err != nil {
				stop.Store(true)
				return node, err
			}
			sum, err = combine(sum, x)
			if err != nil {
				stop.Store(true)
				return node, err
			}
		}
		node.sum = sum
		return node, nil
	}
	left, right := r.Split()
	err := errJoin(
		func() (e error) { node.left, e = errUpsweep(left, in, identity, combine, from, stop); return },
		func() (e error) { node.right, e = errUpsweep(right, in, identity, combine, from, stop); return },
	)
	if err != nil {
		return node, err
	}
	if stop.Load() {
		// A leaf elsewhere has failed; the summaries in this subtree are
		// abandoned and must not reach the combiner.
		return node, nil
	}
	sum, err := combine(node.left.sum, node.right.sum)
	if err != nil {
		stop.Store(true)
		return node, err
	}
	node.sum = sum
	return node, nil
}

// errDownsweep is like downsweep for operators that can report errors.
func errDownsweep[T, A any](node *scanNode[A], out []A, in []T, prefix A, combine parray.ErrCombiner[A], from parray.ErrMapFunc[T, A], stop *atomic.Bool) error {
	if node.left == nil {
		if stop.Load() {
			return nil
		}
		sum := prefix
		for i := node.r.Low; i < node.r.High; i++ {
			x, err := from(in[i])
			if err != nil {
				stop.Store(true)
				return err
			}
			sum, err = combine(sum, x)
			if err != nil {
				stop.Store(true)
				return err
			}
			out[i] = sum
		}
		return nil
	}
	return errJoin(
		func() error { return errDownsweep(node.left, out, in, prefix, combine, from, stop) },
		func() error {
			if stop.Load() {
				return nil
			}
			rightPrefix, err := combine(prefix, node.left.sum)
			if err != nil {
				stop.Store(true)
				return err
			}
			return errDownsweep(node.right, out, in, rightPrefix, combine, from, stop)
		},
	)
}

// ErrScanFrom is like ScanFrom for operators that can report errors.
//
// ErrScanFrom returns only when all invocations of combine and from have
// terminated, returning the left-most error value that is different from
// nil. After a failed invocation, subranges that have not started yet are
// abandoned on a best-effort basis, the contents of out are unspecified,
// and the returned total is the zero value of the accumulation type.
//
// ErrScanFrom panics if the lengths of out and in differ, before any
// parallel work is started.
func ErrScanFrom[T, A any](out []A, in []T, identity A, combine parray.ErrCombiner[A], from parray.ErrMapFunc[T, A], threshold int) (A, error) {
	if len(out) != len(in) {
		panic(fmt.Sprintf("mismatched sequence lengths: %v != %v", len(out), len(in)))
	}
	n := len(in)
	if n == 0 {
		return identity, nil
	}
	grain := parray.ComputeEffectiveThreshold(0, n, threshold)
	var stop atomic.Bool
	var zero A
	root, err := errUpsweep(parray.NewRange(0, n, grain), in, identity, combine, from, &stop)
	if err != nil {
		return zero, err
	}
	if err := errDownsweep(root, out, in, identity, combine, from, &stop); err != nil {
		return zero, err
	}
	return root.sum, nil
}

// ErrScan is like Scan for a combiner that can report an error. See
// ErrScanFrom for the error semantics.
func ErrScan[T any](out, in []T, identity T, combine parray.ErrCombiner[T], threshold int) (T, error) {
	return ErrScanFrom(out, in, identity, combine, func(x T) (T, error) { return x, nil }, threshold)
}
