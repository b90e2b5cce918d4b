package rules

import (
	"math"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// NearestReference 按与两个参考距离的远近把样本分为短程/长程两个总体
// 比较的是 |value|，轨迹坐标可能带符号。
// 要求 Short < Long; 与两个参考值等距时归入短程总体。
type NearestReference struct {
	Short float64 // 短程参考距离 [cm]
	Long  float64 // 长程参考距离 [cm]
}

// Classify 实现 ports.Classifier
func (r *NearestReference) Classify(value float64) domain.Classification {
	refs := []float64{r.Short, r.Long}
	idx, delta := domain.NearestReference(refs, math.Abs(value))

	if idx < 0 {
		idx = 0 // NaN
	}
	label := domain.PopulationShort
	if idx == 1 {
		label = domain.PopulationLong
	}
	return domain.Classification{Value: value, Reference: refs[idx], Delta: delta, Label: label}
}

// Labels 实现 ports.Classifier
func (r *NearestReference) Labels() []string {
	return []string{domain.PopulationShort, domain.PopulationLong}
}
