package services

import (
	"fmt"

	"github.com/renjie/driftkit/pkg/core/ports"
)

// Partition 一次分类的结果
// 每个输入样本恰好出现在一个桶中，Outcomes 与输入一一对应
type Partition[T any] struct {
	Labels   []string
	Buckets  map[string][]T
	Outcomes []Outcome[T]
}

// Outcome 单个样本及其分类
type Outcome[T any] struct {
	Item      T
	Label     string
	Reference float64
	Delta     float64
}

// Bucket 返回某个标签下的样本 (可能为空)
func (p *Partition[T]) Bucket(label string) []T {
	return p.Buckets[label]
}

// PartitionBy 用分类规则把 items 划分到规则声明的各个标签下
// value 从样本中提取参与分类的取值 (距离、电场...)
func PartitionBy[T any](items []T, value func(T) float64, c ports.Classifier) (*Partition[T], error) {
	labels := c.Labels()
	p := &Partition[T]{
		Labels:   labels,
		Buckets:  make(map[string][]T, len(labels)),
		Outcomes: make([]Outcome[T], 0, len(items)),
	}
	// 预先登记全部标签，空桶也存在
	for _, l := range labels {
		p.Buckets[l] = nil
	}

	for i, item := range items {
		res := c.Classify(value(item))
		if _, ok := p.Buckets[res.Label]; !ok {
			return nil, fmt.Errorf("item %d: classifier returned undeclared label %q", i, res.Label)
		}
		p.Buckets[res.Label] = append(p.Buckets[res.Label], item)
		p.Outcomes = append(p.Outcomes, Outcome[T]{Item: item, Label: res.Label, Reference: res.Reference, Delta: res.Delta})
	}
	return p, nil
}
