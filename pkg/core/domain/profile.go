package domain

// ProfilePoint 沿探测器中轴线的一个电场采样
type ProfilePoint struct {
	Z  float64 // [cm]
	Ez float64 // [V/cm]
}

// FieldProfile Ez 随 z 变化的剖面
type FieldProfile struct {
	Points []ProfilePoint
}

// Region 探测器中两个电极之间的区域
type Region struct {
	Name  string  `json:"name"`
	From  float64 `json:"from"` // [cm]
	To    float64 `json:"to"`   // [cm]
	Color string  `json:"color"`
}

// DefaultRegions 返回探测器各漂移区的边界
func DefaultRegions() []Region {
	edges := []float64{0.307, 0.47, 1.361, 2.096, 2.831, 3.566, 4.357, 4.520}
	names := []string{"Anode-LowGrid", "LowGrid-R4", "R4-R3", "R3-R2", "R2-R1", "R1-UppGrid", "UppGrid-Cathode"}
	colors := []string{"e7bcca", "bfe1f9", "c8f5cc", "f5e1c2", "e7bdee", "d2bbf6", "f6b9b2"}

	regions := make([]Region, 0, len(names))
	for i, name := range names {
		regions = append(regions, Region{Name: name, From: edges[i], To: edges[i+1], Color: colors[i]})
	}
	return regions
}
