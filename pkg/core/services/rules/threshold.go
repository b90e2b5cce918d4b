package rules

import (
	"math"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// Threshold 以固定阈值把样本分为低场区和正常区
// value < Limit 为低场, value >= Limit 为正常
type Threshold struct {
	Limit float64 // [V/cm]
}

// Classify 实现 ports.Classifier
func (r *Threshold) Classify(value float64) domain.Classification {
	label := domain.RegimeNominal
	if value < r.Limit {
		label = domain.RegimeLowField
	}
	return domain.Classification{
		Value:     value,
		Reference: r.Limit,
		Delta:     math.Abs(value - r.Limit),
		Label:     label,
	}
}

// Labels 实现 ports.Classifier
func (r *Threshold) Labels() []string {
	return []string{domain.RegimeLowField, domain.RegimeNominal}
}
