package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// 速度-距离 CSV 的列名
const (
	DistanceColumn = "Distance[cm]"
	VelocityColumn = "DriftVelocity[cm/us]"
)

// DistanceIngestor 加载速度-距离曲线
// 支持三种输入: CSV 表、JSON 点数组 [...]、带电压/压强的 JSON 对象 {...}
type DistanceIngestor struct{}

// NewDistanceIngestor 创建曲线加载器
func NewDistanceIngestor() *DistanceIngestor {
	return &DistanceIngestor{}
}

// Load 根据首个非空白字符判断格式
func (j *DistanceIngestor) Load(ctx context.Context, stream io.Reader) (*domain.DistanceTrace, error) {
	source := domain.SourceFromContext(ctx)

	// 使用 bufio.Reader 预读首字节，避免消耗 Token
	bufStream := bufio.NewReader(stream)
	head, err := peekNonSpace(bufStream)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.ColumnError{File: source, Column: DistanceColumn}
		}
		return nil, fmt.Errorf("%s: failed to peek start token: %w", source, err)
	}

	var trace *domain.DistanceTrace
	switch head {
	case '[':
		// Case 1: JSON Array [...]
		var points []domain.DistanceSample
		if err := json.NewDecoder(bufStream).Decode(&points); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", source, domain.ErrMalformedRow, err)
		}
		trace = &domain.DistanceTrace{Points: points}
	case '{':
		// Case 2: Single JSON Object {...}
		var p rawTrace
		if err := json.NewDecoder(bufStream).Decode(&p); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", source, domain.ErrMalformedRow, err)
		}
		trace = &domain.DistanceTrace{Voltage: p.Voltage, Pressure: p.Pressure, Points: p.Points}
	default:
		// Case 3: CSV with header
		trace, err = j.loadCSV(bufStream, source)
		if err != nil {
			return nil, err
		}
	}

	for i, pt := range trace.Points {
		if !finite(pt.Distance) || !finite(pt.Velocity) {
			return nil, &domain.RowError{File: source, Row: i + 1, Column: DistanceColumn,
				Value: fmt.Sprintf("(%v, %v)", pt.Distance, pt.Velocity)}
		}
	}
	return trace, nil
}

// LoadFile 打开并加载一个文件，voltage/pressure 用于补全 CSV 与点数组中缺失的元数据
func (j *DistanceIngestor) LoadFile(ctx context.Context, path string, voltage, pressure float64) (*domain.DistanceTrace, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trace, err := j.Load(withSource(ctx, path), f)
	if err != nil {
		return nil, err
	}
	if trace.Voltage == 0 {
		trace.Voltage = voltage
	}
	if trace.Pressure == 0 {
		trace.Pressure = pressure
	}
	return trace, nil
}

// --- Internal Parsing Logic ---

// rawTrace 导出的曲线对象
type rawTrace struct {
	Voltage  float64                 `json:"voltage"`
	Pressure float64                 `json:"pressure"`
	Points   []domain.DistanceSample `json:"points"`
}

func (j *DistanceIngestor) loadCSV(r io.Reader, source string) (*domain.DistanceTrace, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read csv header: %w", source, err)
	}
	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[strings.TrimSpace(h)] = i
	}
	if err := validateCsvHeaders(headerMap, []string{DistanceColumn, VelocityColumn}, source); err != nil {
		return nil, err
	}

	trace := &domain.DistanceTrace{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", source, domain.ErrMalformedRow, err)
		}
		row, _ := reader.FieldPos(0)

		d, err := parseFloatField(record, headerMap[DistanceColumn], DistanceColumn, source, row)
		if err != nil {
			return nil, err
		}
		v, err := parseFloatField(record, headerMap[VelocityColumn], VelocityColumn, source, row)
		if err != nil {
			return nil, err
		}
		trace.Points = append(trace.Points, domain.DistanceSample{Distance: d, Velocity: v})
	}
	return trace, nil
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.Peek(1)
		if err != nil {
			return 0, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := r.ReadByte(); err != nil {
				return 0, err
			}
			continue
		}
		return b[0], nil
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
