package services

import (
	"github.com/renjie/driftkit/pkg/core/domain"
)

// GroupSamples 按精确键值对原始样本分组
func GroupSamples(samples []domain.Sample, key domain.GroupKey) (*domain.Group[domain.Sample], error) {
	g := domain.NewGroup[domain.Sample]()
	for _, s := range samples {
		k, err := key.Of(s)
		if err != nil {
			return nil, err
		}
		g.Append(k, s)
	}
	return g, nil
}

// GroupDerived 按精确键值对派生样本分组，用于按压强/电压着色的序列
func GroupDerived(samples []domain.DerivedSample, key domain.GroupKey) (*domain.Group[domain.DerivedSample], error) {
	g := domain.NewGroup[domain.DerivedSample]()
	for _, s := range samples {
		k, err := key.Of(s.Sample)
		if err != nil {
			return nil, err
		}
		g.Append(k, s)
	}
	return g, nil
}
