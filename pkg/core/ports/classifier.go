package ports

import "github.com/renjie/driftkit/pkg/core/domain"

// Classifier 分类规则接口
// 这是一个策略接口，具体规则 (最近参考值、阈值) 由 rules 包实现并注入
type Classifier interface {
	// Classify 对单个取值给出分类结果，结果的 Label 必须属于 Labels()
	Classify(value float64) domain.Classification

	// Labels 返回该规则可能产生的全部标签，顺序固定
	Labels() []string
}
