// Package config 加载 driftana 的运行配置
//
// 配置文件是 HuJSON (允许注释和尾逗号)，所有字段都可省略，
// 省略的字段取探测器当前几何与分析中使用的默认常数。
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/renjie/driftkit/pkg/adapters/factory"
	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/adapters/render"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/physics"
	"github.com/renjie/driftkit/pkg/core/ports"
)

// 内置分类规则的 ID
const (
	ClassifierDistance = "distance"
	ClassifierLowField = "low-field"
)

// DefaultHistogramBins 速度直方图默认分箱数，与渲染层的默认值一致
const DefaultHistogramBins = render.DefaultBins

// Physics 分压网络与气体温度
type Physics struct {
	TotalResistance float64 `json:"total_resistance"` // [MOhm]
	DriftResistance float64 `json:"drift_resistance"` // [MOhm]
	DriftLength     float64 `json:"drift_length"`     // [cm]
	Temperature     float64 `json:"temperature"`      // [K]
}

// Config 完整的运行配置
type Config struct {
	Physics       Physics                 `json:"physics"`
	Schema        string                  `json:"schema"`
	CustomSchema  *ingest.Schema          `json:"custom_schema,omitempty"`
	Classifiers   []domain.ClassifierSpec `json:"classifiers"`
	Regions       []domain.Region         `json:"regions"`
	HistogramBins int                     `json:"histogram_bins"`
}

// Default 返回全部取默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load 读取配置文件; path 为空时返回默认配置
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse 解析并校验 HuJSON 配置内容
func Parse(data []byte) (*Config, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := physics.DefaultDivider()
	if c.Physics.TotalResistance == 0 {
		c.Physics.TotalResistance = d.TotalResistance
	}
	if c.Physics.DriftResistance == 0 {
		c.Physics.DriftResistance = d.DriftResistance
	}
	if c.Physics.DriftLength == 0 {
		c.Physics.DriftLength = d.DriftLength
	}
	if c.Physics.Temperature == 0 {
		c.Physics.Temperature = physics.RoomTemperature
	}
	if c.Classifiers == nil {
		c.Classifiers = defaultClassifiers()
	}
	if c.Regions == nil {
		c.Regions = domain.DefaultRegions()
	}
	if c.HistogramBins == 0 {
		c.HistogramBins = DefaultHistogramBins
	}
}

func defaultClassifiers() []domain.ClassifierSpec {
	return []domain.ClassifierSpec{
		{
			ID:         ClassifierDistance,
			Type:       domain.ClassifierTypeNearest,
			Parameters: map[string]float64{"short": 3.85, "long": 4.04},
		},
		{
			ID:         ClassifierLowField,
			Type:       domain.ClassifierTypeThreshold,
			Parameters: map[string]float64{"threshold": 150},
		},
	}
}

// Validate 在读取任何数据之前检查配置
// 所有问题一并返回 (errors.Join)
func (c *Config) Validate() error {
	var errs []error

	if err := c.Divider().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Physics.Temperature <= 0 {
		errs = append(errs, &domain.ZeroDivisorError{Quantity: "temperature"})
	}
	if c.HistogramBins < 0 {
		errs = append(errs, fmt.Errorf("%w: histogram_bins must be positive", domain.ErrInvalidConfig))
	}
	if _, err := c.SampleSchema(""); err != nil {
		errs = append(errs, err)
	}

	seen := make(map[string]bool, len(c.Classifiers))
	for _, spec := range c.Classifiers {
		if seen[spec.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate classifier id %q", domain.ErrInvalidConfig, spec.ID))
			continue
		}
		seen[spec.ID] = true
		if _, err := factory.GetClassifierFactory().CreateClassifier(spec); err != nil {
			errs = append(errs, fmt.Errorf("classifier %s: %w", spec.ID, err))
		}
	}
	for _, id := range []string{ClassifierDistance, ClassifierLowField} {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("%w: classifier %q is not configured", domain.ErrInvalidConfig, id))
		}
	}

	for _, r := range c.Regions {
		if r.To < r.From {
			errs = append(errs, fmt.Errorf("%w: region %q ends before it starts", domain.ErrInvalidConfig, r.Name))
		}
	}

	return errors.Join(errs...)
}

// Divider 配置中的分压网络
func (c *Config) Divider() physics.Divider {
	return physics.Divider{
		TotalResistance: c.Physics.TotalResistance,
		DriftResistance: c.Physics.DriftResistance,
		DriftLength:     c.Physics.DriftLength,
	}
}

// SampleSchema 解析 CSV 列名方案
// override (命令行 --schema) 优先，其次是 custom_schema，最后是 schema 名称
func (c *Config) SampleSchema(override string) (ingest.Schema, error) {
	if override != "" {
		return ingest.SchemaByName(override)
	}
	if c.CustomSchema != nil {
		s := *c.CustomSchema
		if s.Voltage == "" || s.Pressure == "" || s.Speed == "" || s.Spread == "" {
			return ingest.Schema{}, fmt.Errorf("%w: custom_schema needs all four column names", domain.ErrInvalidConfig)
		}
		if !s.SpeedUnit.Valid() {
			return ingest.Schema{}, fmt.Errorf("%w: custom_schema speed_unit %q", domain.ErrInvalidConfig, s.SpeedUnit)
		}
		if s.Name == "" {
			s.Name = "custom"
		}
		return s, nil
	}
	return ingest.SchemaByName(c.Schema)
}

// Normalizer 按配置和列名方案构建物理换算器
func (c *Config) Normalizer(schema ingest.Schema) *physics.Normalizer {
	return physics.NewNormalizer(
		physics.WithDivider(c.Divider()),
		physics.WithTemperature(c.Physics.Temperature),
		physics.WithSpeedUnit(schema.SpeedUnit),
	)
}

// ClassifierSpec 按 ID 查找分类规则配置
func (c *Config) ClassifierSpec(id string) (domain.ClassifierSpec, error) {
	for _, spec := range c.Classifiers {
		if spec.ID == id {
			return spec, nil
		}
	}
	return domain.ClassifierSpec{}, fmt.Errorf("%w: classifier %q is not configured", domain.ErrInvalidConfig, id)
}

// Classifier 按 ID 构建分类规则
func (c *Config) Classifier(id string) (ports.Classifier, error) {
	spec, err := c.ClassifierSpec(id)
	if err != nil {
		return nil, err
	}
	return factory.GetClassifierFactory().CreateClassifier(spec)
}
