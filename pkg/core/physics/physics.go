// Package physics 把仪器原始量 (高压、压强) 换算为物理量:
// 漂移区电场、粒子数密度以及约化场 E/N 与 E/P。
//
// 电场模型是一个分压网络: 总电阻 RTotal 上的电流流过漂移区电阻
// RDrift，漂移区长度为 DriftLength。
package physics

import (
	"math"

	"github.com/renjie/driftkit/pkg/core/domain"
)

const (
	// Boltzmann 玻尔兹曼常数 [J/K]
	Boltzmann = 1.380649e-23
	// PascalPerTorr 1 Torr 对应的帕斯卡数
	PascalPerTorr = 133.322
	// TorrPerPascal 反推压强时使用的换算系数
	TorrPerPascal = 0.00750062
	// RoomTemperature 默认气体温度 [K]
	RoomTemperature = 293.15

	// DefaultTotalResistance 分压网络总电阻 [MOhm]
	DefaultTotalResistance = 1209.7
	// DefaultDriftResistance 漂移区 3 的电阻 [MOhm]
	DefaultDriftResistance = 196.0
	// DefaultDriftLength 漂移区 3 的长度 [cm]
	DefaultDriftLength = 0.735
)

// Divider 描述高压分压网络
type Divider struct {
	TotalResistance float64 // [MOhm]
	DriftResistance float64 // [MOhm]
	DriftLength     float64 // [cm]
}

// DefaultDivider 返回当前探测器几何对应的分压网络
func DefaultDivider() Divider {
	return Divider{
		TotalResistance: DefaultTotalResistance,
		DriftResistance: DefaultDriftResistance,
		DriftLength:     DefaultDriftLength,
	}
}

// Validate 检查分压参数，任何非正数都会导致除零
func (d Divider) Validate() error {
	switch {
	case !positive(d.TotalResistance):
		return &domain.ZeroDivisorError{Quantity: "total resistance"}
	case !positive(d.DriftResistance):
		return &domain.ZeroDivisorError{Quantity: "drift resistance"}
	case !positive(d.DriftLength):
		return &domain.ZeroDivisorError{Quantity: "drift length"}
	}
	return nil
}

// VoltageToField 高压 [V] -> 漂移区电场 [V/cm]
func (d Divider) VoltageToField(v float64) float64 {
	current := v / d.TotalResistance // [uA]
	drop := d.DriftResistance * current
	return drop / d.DriftLength
}

// FieldToVoltage 漂移区电场 [V/cm] -> 高压 [V]，VoltageToField 的逆
func (d Divider) FieldToVoltage(e float64) float64 {
	current := e * d.DriftLength / d.DriftResistance
	return current * d.TotalResistance
}

// VoltageToField 使用默认分压网络
func VoltageToField(v float64) float64 {
	return DefaultDivider().VoltageToField(v)
}

// FieldToVoltage 使用默认分压网络
func FieldToVoltage(e float64) float64 {
	return DefaultDivider().FieldToVoltage(e)
}

// NumberDensity 理想气体: 压强 [Torr]、温度 [K] -> 数密度 [cm^-3]
func NumberDensity(pTorr, tKelvin float64) (float64, error) {
	if !positive(tKelvin) {
		return 0, &domain.ZeroDivisorError{Quantity: "temperature"}
	}
	pa := pTorr * PascalPerTorr
	return pa / (Boltzmann * tKelvin) * 1e-6, nil
}

// positive 有限正数; NaN 与 Inf 都不算
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// PressureFromDensity NumberDensity 的逆: 数密度 [cm^-3] -> 压强 [Torr]
func PressureFromDensity(n, tKelvin float64) float64 {
	pa := n * Boltzmann * tKelvin * 1e6
	return pa * TorrPerPascal
}

// ReducedFieldN E/N [V*cm^2]
func ReducedFieldN(e, n float64) (float64, error) {
	if n == 0 {
		return 0, &domain.ZeroDivisorError{Quantity: "number density"}
	}
	return e / n, nil
}

// ReducedFieldP E/P [V/(cm*Torr)]
func ReducedFieldP(e, pTorr float64) (float64, error) {
	if pTorr == 0 {
		return 0, &domain.ZeroDivisorError{Quantity: "pressure"}
	}
	return e / pTorr, nil
}
