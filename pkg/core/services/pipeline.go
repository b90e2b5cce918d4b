package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/physics"
	"github.com/renjie/driftkit/pkg/core/ports"
)

// Pipeline 换算 + 分组 + 分类流水线
// 把原始 (电压, 压强, 速度) 样本变成可以直接绘图的分组数据集
type Pipeline struct {
	normalizer      *physics.Normalizer
	groupKey        domain.GroupKey
	fieldClassifier ports.Classifier // 可选: 按电场阈值划分低场区
	fieldRule       *domain.ClassifierSpec
}

// PipelineOption 定义配置选项函数 (Functional Option Pattern)
type PipelineOption func(*Pipeline)

// WithNormalizer 设置物理换算器
func WithNormalizer(n *physics.Normalizer) PipelineOption {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// WithGroupKey 设置分组列 (默认按压强)
func WithGroupKey(key domain.GroupKey) PipelineOption {
	return func(p *Pipeline) {
		p.groupKey = key
	}
}

// WithFieldClassifier 设置电场分类规则
func WithFieldClassifier(c ports.Classifier) PipelineOption {
	return func(p *Pipeline) {
		p.fieldClassifier = c
	}
}

// WithFieldRule 从配置构建电场分类规则，构建在 Run 时完成
func WithFieldRule(spec domain.ClassifierSpec) PipelineOption {
	return func(p *Pipeline) {
		p.fieldRule = &spec
	}
}

// NewPipeline 初始化流水线
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		normalizer: physics.NewNormalizer(),
		groupKey:   domain.GroupByPressure,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result 一次运行的全部中间结果
type Result struct {
	Derived []domain.DerivedSample
	Groups  *domain.Group[domain.DerivedSample]
	Regimes *Partition[domain.DerivedSample] // 未配置电场规则时为 nil
}

// Run 执行 换算 -> 分组 -> 分类
// 任何一步失败都终止整个运行
func (p *Pipeline) Run(ctx context.Context, samples []domain.Sample) (*Result, error) {
	run, _ := domain.FromContext(ctx)

	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples to process", domain.ErrEmptyGroup)
	}

	// Step 0: 配置规则先于数据校验
	classifier, err := p.classifier()
	if err != nil {
		return nil, err
	}

	// Step 1: 物理换算
	derived, err := p.normalizer.NormalizeAll(samples)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	slog.Debug("normalized samples", "run", run, "count", len(derived))

	// Step 2: 精确键分组
	groups, err := GroupDerived(derived, p.groupKey)
	if err != nil {
		return nil, err
	}
	if err := groups.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("grouped samples", "run", run, "key", p.groupKey, "groups", groups.Len())

	result := &Result{Derived: derived, Groups: groups}

	// Step 3: 电场分类 (可选)
	if classifier != nil {
		regimes, err := PartitionBy(derived, fieldOf, classifier)
		if err != nil {
			return nil, err
		}
		result.Regimes = regimes
		for _, l := range regimes.Labels {
			slog.Debug("classified samples", "run", run, "label", l, "count", len(regimes.Bucket(l)))
		}
	}

	return result, nil
}

func (p *Pipeline) classifier() (ports.Classifier, error) {
	if p.fieldClassifier != nil && p.fieldRule != nil {
		return nil, errors.New("both a field classifier and a field rule are configured")
	}
	if p.fieldRule != nil {
		return buildFieldClassifier(*p.fieldRule)
	}
	return p.fieldClassifier, nil
}

func fieldOf(s domain.DerivedSample) float64 { return s.Field }
