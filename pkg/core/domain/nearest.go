package domain

import (
	"math"
	"sort"
)

// NearestReference 在升序排列的参考值中找与 x 最接近的一个
// 使用二分查找，refs 必须已排序且非空。
// 距离相等时返回较小的参考值 (下标较小者)。
func NearestReference(refs []float64, x float64) (idx int, delta float64) {
	if len(refs) == 0 {
		return -1, math.Inf(1)
	}

	// 找到第一个 >= x 的位置
	i := sort.SearchFloat64s(refs, x)

	// 检查 i-1 和 i，取差值更小者; 先检查 i-1 保证平局偏向较小的参考值
	best := -1
	bestDelta := math.Inf(1)
	for _, c := range []int{i - 1, i} {
		if c < 0 || c >= len(refs) {
			continue
		}
		d := math.Abs(refs[c] - x)
		if d < bestDelta {
			best = c
			bestDelta = d
		}
	}
	return best, bestDelta
}
