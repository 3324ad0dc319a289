package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RelDiff returns |got-want| / max(|got|, |want|), or the absolute
// difference when both are zero-sized.
func RelDiff(got, want float64) float64 {
	diff := math.Abs(got - want)

	largest := math.Max(math.Abs(got), math.Abs(want))
	if largest == 0 {
		return diff
	}

	return diff / largest
}

// RequireClose fails t if got and want differ by more than relTol
// relative to the larger magnitude.
func RequireClose(t *testing.T, name string, got, want, relTol float64) {
	t.Helper()

	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("%s: non-finite value %v", name, got)
	}

	if d := RelDiff(got, want); d > relTol {
		t.Fatalf("%s: got %.9g, want %.9g (rel diff %.3g > %.3g)", name, got, want, d, relTol)
	}
}

// RequireSliceClose fails t if got and want differ in length or if any
// element pair exceeds relTol.
func RequireSliceClose(t *testing.T, got, want []float64, relTol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := RelDiff(got[i], want[i]); d > relTol {
			t.Fatalf("index %d: got %.9g, want %.9g (rel diff %.3g > %.3g)", i, got[i], want[i], d, relTol)
		}
	}
}

// MaxRelDiff returns the largest element-wise relative difference.
func MaxRelDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		if d := RelDiff(a[i], b[i]); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff, nil
}
