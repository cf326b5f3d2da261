package parray

import (
	"fmt"
	"runtime"
)

type (
	// A Thunk is a function that neither receives nor returns any
	// parameters.
	Thunk func()

	// An ErrThunk is a function that receives no parameters and returns
	// only an error value or nil.
	ErrThunk func() error

	// A Combiner is a binary function used to fold a sequence. It must be
	// associative: combine(combine(a, b), c) must produce the same value
	// as combine(a, combine(b, c)) for all reachable a, b, and c.
	// Commutativity is not required; the primitives of this library
	// always combine partial results in left-to-right sequence order.
	//
	// A combiner must be free of side effects. The order in which a
	// parallel primitive invokes a combiner is not deterministic, only
	// the values it produces are.
	Combiner[T any] func(left, right T) T

	// An ErrCombiner is a Combiner that can additionally report an error.
	ErrCombiner[T any] func(left, right T) (T, error)

	// A MapFunc is a function applied to a single element, with no
	// required ordering between invocations and no side effects other
	// than its return value.
	MapFunc[T, U any] func(x T) U

	// An ErrMapFunc is a MapFunc that can additionally report an error.
	ErrMapFunc[T, U any] func(x T) (U, error)

	// A Predicate decides whether an element is selected.
	Predicate[T any] func(x T) bool

	// An ErrPredicate is a Predicate that can additionally report an
	// error.
	ErrPredicate[T any] func(x T) (bool, error)
)

/*
ComputeEffectiveThreshold determines the grain size for the primitives of
the parallel and sequential packages, that is, the maximum number of indices
a leaf range may contain before it is processed by a sequential loop rather
than split further.

It takes a low and high integer as input, with 0 <= low <= high, as well as
an input threshold designator.

Useful threshold parameter values are 1 to evenly divide up the range across
the available logical CPUs (as determined by runtime.GOMAXPROCS(0)); or 2 or
higher to additionally divide that number by the threshold parameter. Use 1
if you expect no load imbalance, between 2 and 10 if you expect some load
imbalance, or 10 or more if you expect even more load imbalance.

A threshold parameter value of 0 divides up the input range into subranges
of size 1 and yields the most fine-grained parallelism. Fine-grained
parallelism (with a threshold parameter of 0, or 2 or higher) only pays off
if the work per subrange is sufficiently large to compensate for the
scheduling overhead.

A threshold parameter value below zero can be used to specify the grain size
directly, which becomes the absolute value of the threshold parameter value.

The resulting grain size influences only how a range is decomposed into
tasks, never the values a primitive computes.

More specifically:

If the input threshold is > 0, the return value is ceiling((high - low) /
(threshold * runtime.GOMAXPROCS(0))).

If the input threshold is == 0, the return value is 1.

If the input threshold is < 0, the return value is abs(threshold).
*/
func ComputeEffectiveThreshold(low, high, threshold int) int {
	if (low < 0) || (high < low) {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	if threshold > 0 {
		threshold = ((high - low - 1) / (threshold * runtime.GOMAXPROCS(0))) + 1
	} else if threshold < 0 {
		return -1 * threshold
	}
	if threshold == 0 {
		threshold = 1
	}
	return threshold
}
