package services

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// Summary 一组取值的描述统计
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"` // 样本标准差, Count < 2 时为 0
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GroupSummary 某个分组键下的统计
type GroupSummary struct {
	Key float64 `json:"key"`
	Summary
}

// Summarize 计算均值、标准差、中位数和极值
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("%w: %w", domain.ErrEmptyGroup, stats.EmptyInputErr)
	}
	data := stats.Float64Data(values)

	var s Summary
	var errs []error
	var err error

	s.Count = data.Len()
	s.Mean, err = stats.Mean(data)
	errs = append(errs, err)
	s.Median, err = stats.Median(data)
	errs = append(errs, err)
	s.Min, err = stats.Min(data)
	errs = append(errs, err)
	s.Max, err = stats.Max(data)
	errs = append(errs, err)
	if s.Count > 1 {
		s.StdDev, err = stats.StandardDeviationSample(data)
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// SummarizeGroups 对每个分组计算 value 的统计，顺序与分组的升序键一致
func SummarizeGroups(g *domain.Group[domain.DerivedSample], value func(domain.DerivedSample) float64) ([]GroupSummary, error) {
	out := make([]GroupSummary, 0, g.Len())
	for _, k := range g.SortedKeys() {
		bucket, _ := g.Get(k)
		values := make([]float64, len(bucket))
		for i, s := range bucket {
			values[i] = value(s)
		}
		sum, err := Summarize(values)
		if err != nil {
			return nil, fmt.Errorf("group %v: %w", k, err)
		}
		out = append(out, GroupSummary{Key: k, Summary: sum})
	}
	return out, nil
}
