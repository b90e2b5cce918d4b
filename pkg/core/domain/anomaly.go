package domain

// Anomaly 代表一个落在低场区的"异常"点
// 压强和电压都是由 E 与 E/N 反推得到的，用于和源数据核对
type Anomaly struct {
	Pressure float64       `json:"pressure"` // 反推压强 [Torr]
	Voltage  float64       `json:"voltage"`  // 反推高压 [V]
	Speed    float64       `json:"speed"`    // 漂移速度 [cm/s]
	Field    float64       `json:"field"`    // 电场 [V/cm]
	Source   DerivedSample `json:"source"`
}
