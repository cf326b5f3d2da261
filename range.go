package parray

import "fmt"

// A Range describes the half-open interval of sequence indices from Low to
// High, including Low but excluding High, together with a grain size. The
// grain size bounds the number of indices a leaf range may contain; ranges
// larger than the grain are split recursively. The grain size controls the
// parallelism/overhead trade-off of a primitive, but never the values it
// computes.
type Range struct {
	Low, High int
	Grain     int
}

// NewRange returns a Range covering the half-open interval from low to
// high with the given grain size.
//
// NewRange panics if low < 0, high < low, or grain < 1.
func NewRange(low, high, grain int) Range {
	if (low < 0) || (high < low) {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
	if grain < 1 {
		panic(fmt.Sprintf("invalid grain size: %v", grain))
	}
	return Range{Low: low, High: high, Grain: grain}
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int {
	return r.High - r.Low
}

// Empty reports whether the range covers no indices.
func (r Range) Empty() bool {
	return r.High <= r.Low
}

// Leaf reports whether the range is small enough to be processed by a
// sequential loop rather than split further.
func (r Range) Leaf() bool {
	return r.Len() <= r.Grain
}

// Split divides the range into two non-empty halves that cover the
// original range without gap or overlap: left.Low == r.Low, left.High ==
// right.Low, and right.High == r.High. Both halves inherit the grain size.
//
// Split panics when called on a leaf range.
func (r Range) Split() (left, right Range) {
	if r.Leaf() {
		panic(fmt.Sprintf("split of leaf range: %v:%v with grain size %v", r.Low, r.High, r.Grain))
	}
	mid := r.Low + r.Len()/2
	left = Range{Low: r.Low, High: mid, Grain: r.Grain}
	right = Range{Low: mid, High: r.High, Grain: r.Grain}
	return
}
