package domain

// DistanceSample 漂移轨迹上的一个点: 漂移距离与速度
type DistanceSample struct {
	Distance float64 `json:"x"` // [cm]
	Velocity float64 `json:"y"` // [cm/us]
}

// DistanceTrace 某一电压/压强下的速度-距离曲线
type DistanceTrace struct {
	Voltage  float64          `json:"voltage"`
	Pressure float64          `json:"pressure"`
	Points   []DistanceSample `json:"points"`
}
