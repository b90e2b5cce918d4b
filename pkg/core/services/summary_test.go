package services_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/services"
)

func TestSummarize(t *testing.T) {
	got, err := services.Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	want := services.Summary{
		Count:  8,
		Mean:   5,
		StdDev: math.Sqrt(32.0 / 7.0),
		Median: 4.5,
		Min:    2,
		Max:    9,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeSingleValue(t *testing.T) {
	got, err := services.Summarize([]float64{3.85})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got.StdDev != 0 || got.Mean != 3.85 || got.Count != 1 {
		t.Errorf("Unexpected summary: %+v", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := services.Summarize(nil); !errors.Is(err, domain.ErrEmptyGroup) {
		t.Errorf("Expected ErrEmptyGroup, got %v", err)
	}
}

func TestSummarizeGroups(t *testing.T) {
	g := domain.NewGroup[domain.DerivedSample]()
	g.Append(1600, domain.DerivedSample{SpeedCMPerSecond: 10})
	g.Append(1498, domain.DerivedSample{SpeedCMPerSecond: 1})
	g.Append(1498, domain.DerivedSample{SpeedCMPerSecond: 3})

	sums, err := services.SummarizeGroups(g, func(s domain.DerivedSample) float64 { return s.SpeedCMPerSecond })
	if err != nil {
		t.Fatalf("SummarizeGroups failed: %v", err)
	}
	if len(sums) != 2 || sums[0].Key != 1498 || sums[1].Key != 1600 {
		t.Fatalf("Expected ascending keys [1498 1600], got %+v", sums)
	}
	if sums[0].Mean != 2 || sums[0].Count != 2 {
		t.Errorf("Group 1498 wrong: %+v", sums[0])
	}

	g.Ensure(1700)
	if _, err := services.SummarizeGroups(g, func(s domain.DerivedSample) float64 { return s.SpeedCMPerSecond }); !errors.Is(err, domain.ErrEmptyGroup) {
		t.Errorf("Expected ErrEmptyGroup for an empty group, got %v", err)
	}
}
