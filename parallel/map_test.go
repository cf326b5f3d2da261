package parallel_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/exascience/parray/parallel"
	"github.com/exascience/parray/sequential"
)

// thresholds covers the interesting decompositions: single-element leaves,
// direct grain sizes, GOMAXPROCS-derived grains, and a grain larger than
// any test input (a single serial leaf).
var thresholds = []int{0, -1, -2, -3, -7, -64, 1, 2, 10, -1000000}

func randomInts(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = rand.Intn(1000) - 500
	}
	return result
}

func TestMap(t *testing.T) {
	double := func(x int) int64 { return 2 * int64(x) }
	for _, n := range []int{0, 1, 2, 7, 100, 1023} {
		in := randomInts(n)
		want := make([]int64, n)
		sequential.Map(want, in, double, 0)
		for _, threshold := range thresholds {
			out := make([]int64, n)
			parallel.Map(out, in, double, threshold)
			require.Equal(t, want, out, "n = %v, threshold = %v", n, threshold)
		}
	}
}

func TestMapGrainInvariance(t *testing.T) {
	in := randomInts(511)
	square := func(x int) int { return x * x }
	first := make([]int, len(in))
	parallel.Map(first, in, square, thresholds[0])
	for _, threshold := range thresholds[1:] {
		out := make([]int, len(in))
		parallel.Map(out, in, square, threshold)
		require.Equal(t, first, out, "threshold = %v", threshold)
	}
}

func TestMapLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		parallel.Map(make([]int, 3), make([]int, 4), func(x int) int { return x }, 0)
	})
}

func TestErrMap(t *testing.T) {
	errOdd := errors.New("odd element")
	half := func(x int) (int, error) {
		if x%2 != 0 {
			return 0, errOdd
		}
		return x / 2, nil
	}

	in := []int{2, 4, 6, 8, 10, 12, 14, 16}
	for _, threshold := range thresholds {
		out := make([]int, len(in))
		require.NoError(t, parallel.ErrMap(out, in, half, threshold))
		require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, out)
	}

	in[5] = 13
	for _, threshold := range thresholds {
		out := make([]int, len(in))
		err := parallel.ErrMap(out, in, half, threshold)
		require.ErrorIs(t, err, errOdd, "threshold = %v", threshold)
	}
}

func TestMapPanicPropagates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("panic in map function did not propagate")
		}
	}()
	in := randomInts(100)
	out := make([]int, len(in))
	parallel.Map(out, in, func(x int) int {
		if x == in[42] {
			panic("boom")
		}
		return x
	}, -5)
}

// Example_saxpy computes a*x + y element-wise over two vectors, mapping
// over a slice of indices so the map function can read both inputs.
func Example_saxpy() {
	const a = 2.0
	x := []float64{1, 2, 3, 4}
	y := []float64{10, 20, 30, 40}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	out := make([]float64, len(x))
	parallel.Map(out, idx, func(i int) float64 { return a*x[i] + y[i] }, -1)

	fmt.Println(out)
	// Output:
	// [12 24 36 48]
}
