package domain

import (
	"fmt"
	"sort"
)

// GroupKey 决定按哪一列分组
type GroupKey string

const (
	GroupByPressure GroupKey = "pressure"
	GroupByVoltage  GroupKey = "voltage"
)

// Of 返回样本在该分组列上的取值
func (k GroupKey) Of(s Sample) (float64, error) {
	switch k {
	case GroupByPressure:
		return s.Pressure, nil
	case GroupByVoltage:
		return s.Voltage, nil
	default:
		return 0, fmt.Errorf("%w: unknown group key %q", ErrInvalidConfig, k)
	}
}

// Group 按浮点键精确分组的有序映射
// 键按首次出现的顺序保存，组内样本保持插入顺序。
// 键的比较是精确的浮点相等，1498.0 与 1498.00001 会落入不同分组。
type Group[T any] struct {
	keys    []float64
	buckets map[float64][]T
}

// NewGroup 创建空分组
func NewGroup[T any]() *Group[T] {
	return &Group[T]{buckets: make(map[float64][]T)}
}

// Append 把 v 追加到 key 对应的分组，分组不存在时先插入
func (g *Group[T]) Append(key float64, v T) {
	bucket, ok := g.buckets[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	g.buckets[key] = append(bucket, v)
}

// Ensure 只登记 key 而不放入样本
// 用于先声明序列再填充的场景；未被填充的分组会被 Validate 拒绝。
func (g *Group[T]) Ensure(key float64) {
	if _, ok := g.buckets[key]; ok {
		return
	}
	g.keys = append(g.keys, key)
	g.buckets[key] = nil
}

// Get 返回 key 对应的样本以及该分组是否存在
func (g *Group[T]) Get(key float64) ([]T, bool) {
	bucket, ok := g.buckets[key]
	return bucket, ok
}

// Keys 按首次出现顺序返回所有键
func (g *Group[T]) Keys() []float64 {
	out := make([]float64, len(g.keys))
	copy(out, g.keys)
	return out
}

// SortedKeys 返回升序排列的键 (颜色映射需要稳定顺序)
func (g *Group[T]) SortedKeys() []float64 {
	out := g.Keys()
	sort.Float64s(out)
	return out
}

// Len 返回分组数量
func (g *Group[T]) Len() int {
	return len(g.keys)
}

// Total 返回所有分组内的样本总数
func (g *Group[T]) Total() int {
	n := 0
	for _, k := range g.keys {
		n += len(g.buckets[k])
	}
	return n
}

// All 按分组顺序展开全部样本
func (g *Group[T]) All() []T {
	out := make([]T, 0, g.Total())
	for _, k := range g.keys {
		out = append(out, g.buckets[k]...)
	}
	return out
}

// Validate 检查每个分组至少有一个样本
func (g *Group[T]) Validate() error {
	for _, k := range g.keys {
		if len(g.buckets[k]) == 0 {
			return &GroupError{Key: k}
		}
	}
	return nil
}
