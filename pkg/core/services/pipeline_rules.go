package services

import (
	"fmt"

	"github.com/renjie/driftkit/pkg/adapters/factory"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/ports"
)

// buildFieldClassifier 根据配置构建电场分类规则
// 只有 THRESHOLD 类规则作用于电场
func buildFieldClassifier(spec domain.ClassifierSpec) (ports.Classifier, error) {
	if spec.Type != domain.ClassifierTypeThreshold {
		return nil, fmt.Errorf("%w: rule %q: field classification needs a %s rule, got %s",
			domain.ErrInvalidConfig, spec.ID, domain.ClassifierTypeThreshold, spec.Type)
	}
	c, err := factory.GetClassifierFactory().CreateClassifier(spec)
	if err != nil {
		return nil, fmt.Errorf("convert rule %s failed: %w", spec.ID, err)
	}
	return c, nil
}
