package physics

import (
	"fmt"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// Normalizer 把 Sample 换算为 DerivedSample
// 无状态，可以在多次调用间复用
type Normalizer struct {
	divider     Divider
	temperature float64
	speedUnit   domain.SpeedUnit
}

// Option 定义配置选项函数 (Functional Option Pattern)
type Option func(*Normalizer)

// WithTemperature 设置气体温度 [K] (默认 293.15)
func WithTemperature(t float64) Option {
	return func(n *Normalizer) {
		n.temperature = t
	}
}

// WithDivider 设置分压网络参数
func WithDivider(d Divider) Option {
	return func(n *Normalizer) {
		n.divider = d
	}
}

// WithSpeedUnit 设置源数据速度列的单位 (默认 cm/us)
func WithSpeedUnit(u domain.SpeedUnit) Option {
	return func(n *Normalizer) {
		n.speedUnit = u
	}
}

// NewNormalizer 初始化换算器
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		divider:     DefaultDivider(),
		temperature: RoomTemperature,
		speedUnit:   domain.SpeedUnitCMPerMicrosecond,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Divider 返回当前使用的分压网络
func (n *Normalizer) Divider() Divider { return n.divider }

// Temperature 返回当前使用的温度 [K]
func (n *Normalizer) Temperature() float64 { return n.temperature }

// Normalize 计算单个样本的派生量
// 压强为零或配置退化时返回 ErrDivisionByZero，而不是产生 inf/NaN
func (n *Normalizer) Normalize(s domain.Sample) (domain.DerivedSample, error) {
	if err := n.divider.Validate(); err != nil {
		return domain.DerivedSample{}, err
	}
	if !n.speedUnit.Valid() {
		return domain.DerivedSample{}, fmt.Errorf("%w: unknown speed unit %q", domain.ErrInvalidConfig, n.speedUnit)
	}

	field := n.divider.VoltageToField(s.Voltage)

	density, err := NumberDensity(s.Pressure, n.temperature)
	if err != nil {
		return domain.DerivedSample{}, err
	}
	en, err := ReducedFieldN(field, density)
	if err != nil {
		return domain.DerivedSample{}, fmt.Errorf("sample V=%v P=%v: %w", s.Voltage, s.Pressure, err)
	}
	ep, err := ReducedFieldP(field, s.Pressure)
	if err != nil {
		return domain.DerivedSample{}, fmt.Errorf("sample V=%v P=%v: %w", s.Voltage, s.Pressure, err)
	}

	return domain.DerivedSample{
		Sample:            s,
		Field:             field,
		NumberDensity:     density,
		ReducedFieldN:     en,
		ReducedFieldP:     ep,
		SpeedCMPerSecond:  n.speedUnit.ToCMPerSecond(s.Speed),
		SpreadCMPerSecond: n.speedUnit.ToCMPerSecond(s.SpeedStdDev),
	}, nil
}

// NormalizeAll 换算全部样本，任一失败则整体失败
func (n *Normalizer) NormalizeAll(samples []domain.Sample) ([]domain.DerivedSample, error) {
	out := make([]domain.DerivedSample, 0, len(samples))
	for i, s := range samples {
		d, err := n.Normalize(s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
