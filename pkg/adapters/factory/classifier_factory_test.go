package factory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/renjie/driftkit/pkg/adapters/factory"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/ports"
	"github.com/renjie/driftkit/pkg/core/services/rules"
)

func TestCreateClassifier(t *testing.T) {
	f := factory.NewClassifierFactory()

	c, err := f.CreateClassifier(domain.ClassifierSpec{
		ID:         "distance",
		Type:       domain.ClassifierTypeNearest,
		Parameters: map[string]float64{"short": 3.85, "long": 4.04},
	})
	if err != nil {
		t.Fatalf("NEAREST failed: %v", err)
	}
	if got := c.Classify(3.90).Label; got != domain.PopulationShort {
		t.Errorf("Expected 3.90 -> short, got %s", got)
	}

	c, err = f.CreateClassifier(domain.ClassifierSpec{
		ID:         "low-field",
		Type:       domain.ClassifierTypeThreshold,
		Parameters: map[string]float64{"threshold": 150},
	})
	if err != nil {
		t.Fatalf("THRESHOLD failed: %v", err)
	}
	if got := c.Classify(100).Label; got != domain.RegimeLowField {
		t.Errorf("Expected 100 -> low-field, got %s", got)
	}
}

func TestCreateClassifierInvalid(t *testing.T) {
	f := factory.GetClassifierFactory()

	type testcase struct {
		name string
		spec domain.ClassifierSpec
	}
	cases := []testcase{
		{"unknown type", domain.ClassifierSpec{Type: "RANGE"}},
		{"threshold missing", domain.ClassifierSpec{Type: domain.ClassifierTypeThreshold}},
		{"threshold not finite", domain.ClassifierSpec{Type: domain.ClassifierTypeThreshold,
			Parameters: map[string]float64{"threshold": math.Inf(1)}}},
		{"long missing", domain.ClassifierSpec{Type: domain.ClassifierTypeNearest,
			Parameters: map[string]float64{"short": 3.85}}},
		{"references reversed", domain.ClassifierSpec{Type: domain.ClassifierTypeNearest,
			Parameters: map[string]float64{"short": 4.04, "long": 3.85}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.CreateClassifier(tc.spec); !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestRegisterOverridesBuilder(t *testing.T) {
	f := factory.NewClassifierFactory()
	f.Register("ANY", func(map[string]float64) (ports.Classifier, error) {
		return &rules.Threshold{Limit: 0}, nil
	})
	if _, err := f.CreateClassifier(domain.ClassifierSpec{Type: "ANY"}); err != nil {
		t.Errorf("Custom builder not used: %v", err)
	}
}
