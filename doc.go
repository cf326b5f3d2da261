// Package parray provides composable data-parallel primitives over slices:
// a parallel map, a parallel prefix scan, and a parallel stream compaction
// (filter) built from the first two. While Go is primarily designed for
// concurrent programming, it is also usable to some extent for parallel
// programming, and this library provides convenience functionality to turn
// otherwise sequential array algorithms into parallel algorithms, with the
// goal to improve performance.
//
// The root package defines the shared vocabulary: Range values describing
// half-open index intervals with a splitting policy, function types for
// combiners, map functions, and predicates, and the grain-size computation
// shared by every primitive.
//
// parray/parallel provides the parallel implementations. Map applies an
// element-wise function across a range. Scan computes an associative prefix
// reduction via a two-pass fork-join tree and additionally returns the total
// reduction over the whole sequence. Filter composes Map, Scan, and a
// parallel Scatter into an order-preserving stream compaction. Reduce
// computes only the total. All results are independent of how the work is
// partitioned, provided the supplied combiners are truly associative.
//
// parray/sequential provides sequential implementations of the same
// operations, for testing and debugging purposes, and as baselines for
// benchmarking the parallel implementations.
//
// Parray has been influenced to various extents by ideas from Cilk,
// Threading Building Blocks, and Java's java.util.concurrent and
// java.util.stream packages. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background, and the sample chapter at
// https://mitpress.mit.edu/books/introduction-algorithms for a more
// practical overview of the underlying concepts.
package parray
