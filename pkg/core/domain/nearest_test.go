package domain_test

import (
	"math"
	"testing"

	"github.com/renjie/driftkit/pkg/core/domain"
)

func TestNearestReference(t *testing.T) {
	refs := []float64{3.85, 4.04}

	type testcase struct {
		name    string
		x       float64
		wantIdx int
	}
	cases := []testcase{
		{name: "closer to short", x: 3.90, wantIdx: 0},
		{name: "closer to long", x: 4.00, wantIdx: 1},
		{name: "below all references", x: 1.0, wantIdx: 0},
		{name: "above all references", x: 9.0, wantIdx: 1},
		{name: "exact hit", x: 4.04, wantIdx: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			idx, delta := domain.NearestReference(refs, tc.x)
			if idx != tc.wantIdx {
				t.Fatalf("Expected index %d, got %d", tc.wantIdx, idx)
			}
			if want := math.Abs(refs[idx] - tc.x); delta != want {
				t.Errorf("Expected delta %v, got %v", want, delta)
			}
		})
	}
}

func TestNearestReferenceTie(t *testing.T) {
	// 2 到 1 和 3 的距离严格相等
	idx, delta := domain.NearestReference([]float64{1, 3}, 2)
	if idx != 0 || delta != 1 {
		t.Errorf("Expected tie to resolve to the smaller reference (0, 1), got (%d, %v)", idx, delta)
	}
}

func TestNearestReferenceEmpty(t *testing.T) {
	idx, delta := domain.NearestReference(nil, 1)
	if idx != -1 || !math.IsInf(delta, 1) {
		t.Errorf("Expected (-1, +Inf), got (%d, %v)", idx, delta)
	}
}
