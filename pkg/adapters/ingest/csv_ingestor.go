package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/ports"
	"github.com/renjie/driftkit/pkg/core/services"
)

// Schema 描述源 CSV 中四个必需列的列名以及速度单位
type Schema struct {
	Name      string           `json:"name"`
	Voltage   string           `json:"voltage"`
	Pressure  string           `json:"pressure"`
	Speed     string           `json:"speed"`
	Spread    string           `json:"spread"`
	SpeedUnit domain.SpeedUnit `json:"speed_unit"`
}

// GasTableSchema 气体表模拟输出的列名 (速度单位 cm/us)
var GasTableSchema = Schema{
	Name:      "gas-table",
	Voltage:   "Voltage[V]",
	Pressure:  "Pressure[Torr]",
	Speed:     "MeanDriftSpeed[cm/us]",
	Spread:    "StdDev[cm/us]",
	SpeedUnit: domain.SpeedUnitCMPerMicrosecond,
}

// LegacySweepSchema 早期电压-压强扫描表的列名 (速度单位 cm/s)
var LegacySweepSchema = Schema{
	Name:      "legacy-sweep",
	Voltage:   "Voltages [V]",
	Pressure:  "Pressures [Tor]",
	Speed:     "Drift Speed [cm/s]",
	Spread:    "SD [cm/s]",
	SpeedUnit: domain.SpeedUnitCMPerSecond,
}

// SchemaByName 按名称查找内置列名方案
func SchemaByName(name string) (Schema, error) {
	switch name {
	case GasTableSchema.Name, "":
		return GasTableSchema, nil
	case LegacySweepSchema.Name:
		return LegacySweepSchema, nil
	}
	return Schema{}, fmt.Errorf("%w: unknown schema %q", domain.ErrInvalidConfig, name)
}

func (s Schema) columns() []string {
	return []string{s.Voltage, s.Pressure, s.Speed, s.Spread}
}

// CsvSampleIngestor 实现 ports.SampleLoader
// 专门处理带表头的逗号分隔测量表
type CsvSampleIngestor struct {
	schema Schema
}

var _ ports.SampleLoader = (*CsvSampleIngestor)(nil)

// NewCsvSampleIngestor 创建 CSV 加载器实例
func NewCsvSampleIngestor(schema Schema) *CsvSampleIngestor {
	return &CsvSampleIngestor{schema: schema}
}

// Schema 返回加载器使用的列名方案
func (c *CsvSampleIngestor) Schema() Schema { return c.schema }

// Load 实现 ports.SampleLoader.Load
// 先校验表头再逐行解析; 任意一行出错则整个文件失败，不返回任何样本
func (c *CsvSampleIngestor) Load(ctx context.Context, stream io.Reader) ([]domain.Sample, error) {
	source := domain.SourceFromContext(ctx)

	reader := csv.NewReader(stream)
	// 允许变长字段，额外列 (e.g. TotalAttempts) 直接忽略
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// 1. Read Header
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ColumnError{File: source, Column: c.schema.Voltage}
		}
		return nil, fmt.Errorf("%s: failed to read csv header: %w", source, err)
	}

	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[strings.TrimSpace(h)] = i
	}

	// Validate required columns
	if err := validateCsvHeaders(headerMap, c.schema.columns(), source); err != nil {
		return nil, err
	}

	// 2. Read Records
	var samples []domain.Sample
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", source, domain.ErrMalformedRow, err)
		}
		// 行号取物理行号，空行被 csv.Reader 跳过但仍计数
		row, _ := reader.FieldPos(0)

		sample, err := c.parseRecord(record, headerMap, source, row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// LoadFile 打开并加载一个文件，错误信息中带上文件路径
func (c *CsvSampleIngestor) LoadFile(ctx context.Context, path string) ([]domain.Sample, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.Load(withSource(ctx, path), f)
}

// LoadMany 依次加载多个文件并按顺序拼接 (新旧模拟结果合并对比)
func (c *CsvSampleIngestor) LoadMany(ctx context.Context, paths ...string) ([]domain.Sample, error) {
	var all []domain.Sample
	for _, p := range paths {
		samples, err := c.LoadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		all = append(all, samples...)
	}
	return all, nil
}

// LoadGrouped 加载并按精确键分组
func (c *CsvSampleIngestor) LoadGrouped(ctx context.Context, stream io.Reader, key domain.GroupKey) (*domain.Group[domain.Sample], error) {
	samples, err := c.Load(ctx, stream)
	if err != nil {
		return nil, err
	}
	return services.GroupSamples(samples, key)
}

func validateCsvHeaders(headerMap map[string]int, required []string, source string) error {
	for _, req := range required {
		if _, ok := headerMap[req]; !ok {
			return &domain.ColumnError{File: source, Column: req}
		}
	}
	return nil
}

func (c *CsvSampleIngestor) parseRecord(record []string, headerMap map[string]int, source string, row int) (domain.Sample, error) {
	get := func(col string) (float64, error) {
		return parseFloatField(record, headerMap[col], col, source, row)
	}

	var s domain.Sample
	var err error
	if s.Voltage, err = get(c.schema.Voltage); err != nil {
		return domain.Sample{}, err
	}
	if s.Pressure, err = get(c.schema.Pressure); err != nil {
		return domain.Sample{}, err
	}
	if s.Speed, err = get(c.schema.Speed); err != nil {
		return domain.Sample{}, err
	}
	if s.SpeedStdDev, err = get(c.schema.Spread); err != nil {
		return domain.Sample{}, err
	}
	return s, nil
}

// parseFloatField 解析一个必需的浮点字段
// 缺失、非数字以及 NaN/Inf 都视为 MalformedRow
func parseFloatField(record []string, idx int, col, source string, row int) (float64, error) {
	raw := ""
	if idx < len(record) {
		raw = strings.TrimSpace(record[idx])
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.RowError{File: source, Row: row, Column: col, Value: raw}
	}
	return v, nil
}

// withSource 在 ctx 中记录输入文件，保留已有的其他运行信息
func withSource(ctx context.Context, path string) context.Context {
	info, _ := domain.FromContext(ctx)
	info.Source = path
	return domain.NewContext(ctx, info)
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return f, nil
}
