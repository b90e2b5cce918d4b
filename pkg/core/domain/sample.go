package domain

// SpeedUnit 定义源文件中速度列的单位
type SpeedUnit string

const (
	SpeedUnitCMPerMicrosecond SpeedUnit = "cm/us" // 气体表模拟输出 (Garfield)
	SpeedUnitCMPerSecond      SpeedUnit = "cm/s"  // 早期电压扫描表
)

// ToCMPerSecond 按单位把速度换算到 cm/s
func (u SpeedUnit) ToCMPerSecond(v float64) float64 {
	if u == SpeedUnitCMPerMicrosecond {
		return v * 1e6
	}
	return v
}

// Valid 判断是否为已知单位
func (u SpeedUnit) Valid() bool {
	return u == SpeedUnitCMPerMicrosecond || u == SpeedUnitCMPerSecond
}

// Sample 代表源文件中的一行测量值
// 单位与源文件一致 (V, Torr, cm/us 或 cm/s)，读取后不再修改
type Sample struct {
	Voltage     float64 `json:"voltage"`
	Pressure    float64 `json:"pressure"`
	Speed       float64 `json:"speed"`
	SpeedStdDev float64 `json:"speed_stddev"`
}

// DerivedSample 代表经物理换算后的样本
// 所有派生字段都只依赖 Sample 和固定常数，每次运行重新计算
type DerivedSample struct {
	Sample

	Field         float64 `json:"field"`          // 漂移区电场 [V/cm]
	NumberDensity float64 `json:"number_density"` // 粒子数密度 [cm^-3]
	ReducedFieldN float64 `json:"e_over_n"`       // E/N [V*cm^2]
	ReducedFieldP float64 `json:"e_over_p"`       // E/P [V/(cm*Torr)]

	SpeedCMPerSecond  float64 `json:"speed_cm_s"`
	SpreadCMPerSecond float64 `json:"spread_cm_s"`
}
