package parray

import (
	"math/rand"
	"runtime"
	"testing"
)

// checkDecomposition recursively splits r down to leaves and verifies that
// the leaves cover r without gap or overlap, in order.
func checkDecomposition(t *testing.T, r Range) {
	t.Helper()
	if r.Leaf() {
		if r.Len() > r.Grain {
			t.Errorf("leaf range %v:%v larger than grain size %v", r.Low, r.High, r.Grain)
		}
		return
	}
	left, right := r.Split()
	if left.Low != r.Low {
		t.Errorf("left.Low = %v, want %v", left.Low, r.Low)
	}
	if left.High != right.Low {
		t.Errorf("left.High = %v, right.Low = %v, want them equal", left.High, right.Low)
	}
	if right.High != r.High {
		t.Errorf("right.High = %v, want %v", right.High, r.High)
	}
	if left.Empty() || right.Empty() {
		t.Errorf("split of %v:%v produced an empty half", r.Low, r.High)
	}
	checkDecomposition(t, left)
	checkDecomposition(t, right)
}

func TestSplit(t *testing.T) {
	for i := 0; i < 100; i++ {
		low := rand.Intn(50)
		high := low + rand.Intn(1000)
		grain := 1 + rand.Intn(20)
		checkDecomposition(t, NewRange(low, high, grain))
	}
}

func TestEmptyRangeIsLeaf(t *testing.T) {
	r := NewRange(5, 5, 1)
	if !r.Empty() {
		t.Error("range 5:5 not empty")
	}
	if !r.Leaf() {
		t.Error("empty range is not a leaf")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %v, want 0", r.Len())
	}
}

func TestNewRangePanics(t *testing.T) {
	for _, c := range []struct{ low, high, grain int }{
		{-1, 5, 1},
		{5, 4, 1},
		{0, 5, 0},
		{0, 5, -3},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewRange(%v, %v, %v) did not panic", c.low, c.high, c.grain)
				}
			}()
			NewRange(c.low, c.high, c.grain)
		}()
	}
}

func TestSplitLeafPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Split on a leaf range did not panic")
		}
	}()
	NewRange(0, 3, 4).Split()
}

func TestComputeEffectiveThreshold(t *testing.T) {
	if grain := ComputeEffectiveThreshold(0, 100, 0); grain != 1 {
		t.Errorf("threshold 0: grain = %v, want 1", grain)
	}
	if grain := ComputeEffectiveThreshold(0, 100, -7); grain != 7 {
		t.Errorf("threshold -7: grain = %v, want 7", grain)
	}
	procs := runtime.GOMAXPROCS(0)
	want := ((100 - 1) / procs) + 1
	if grain := ComputeEffectiveThreshold(0, 100, 1); grain != want {
		t.Errorf("threshold 1: grain = %v, want %v", grain, want)
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("invalid range did not panic")
			}
		}()
		ComputeEffectiveThreshold(10, 5, 1)
	}()
}
