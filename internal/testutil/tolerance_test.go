package testutil

import (
	"math"
	"testing"
)

func TestRelDiff(t *testing.T) {
	tests := []struct {
		got, want, rel float64
	}{
		{1, 1, 0},
		{0, 0, 0},
		{100, 101, 1.0 / 101},
		{-2, 2, 2},
		{0, 1e-20, 1},
	}

	for _, tt := range tests {
		if d := RelDiff(tt.got, tt.want); math.Abs(d-tt.rel) > 1e-15 {
			t.Fatalf("RelDiff(%v, %v) = %v, want %v", tt.got, tt.want, d, tt.rel)
		}
	}
}

func TestMaxRelDiff(t *testing.T) {
	d, err := MaxRelDiff([]float64{1, 2, 4}, []float64{1, 2, 5})
	if err != nil {
		t.Fatalf("MaxRelDiff error: %v", err)
	}

	if math.Abs(d-0.2) > 1e-15 {
		t.Fatalf("MaxRelDiff = %v, want 0.2", d)
	}
}

func TestMaxRelDiffLengthMismatch(t *testing.T) {
	if _, err := MaxRelDiff([]float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRequireClosePasses(t *testing.T) {
	RequireClose(t, "value", 1.0000001, 1, 1e-6)
	RequireSliceClose(t, []float64{1e30, 2e30}, []float64{1e30, 2.0000000001e30}, 1e-9)
}
