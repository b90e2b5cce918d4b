package domain

// ClassifierType 定义分类规则类型
type ClassifierType string

const (
	ClassifierTypeNearest   ClassifierType = "NEAREST"   // 最近参考值
	ClassifierTypeThreshold ClassifierType = "THRESHOLD" // 阈值二分
)

// 最近参考值分类的两个总体 (短程 / 长程漂移轨迹)
const (
	PopulationShort = "short"
	PopulationLong  = "long"
)

// 阈值分类的两个区间
const (
	RegimeLowField = "low-field"
	RegimeNominal  = "nominal"
)

// ClassifierSpec 定义一条分类规则的配置
// 由 factory 转换为可执行的 ports.Classifier
type ClassifierSpec struct {
	ID         string             `json:"id"`
	Type       ClassifierType     `json:"type"`
	Parameters map[string]float64 `json:"parameters"` // e.g. {"short": 3.85, "long": 4.04}
}

// Classification 单个样本的分类结果
type Classification struct {
	Value     float64 `json:"value"`     // 参与分类的取值 (距离或电场)
	Reference float64 `json:"reference"` // 命中的参考值或阈值
	Delta     float64 `json:"delta"`     // |Value - Reference|
	Label     string  `json:"label"`
}
