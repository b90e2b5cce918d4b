package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/renjie/driftkit/pkg/core/domain"
)

// 单次模拟统计文件中的键
const (
	statsVoltageKey  = "Voltage [V]"
	statsPressureKey = "Pressure [Torr]"
	statsMeanKey     = "Mean drift speed [cm/us]"
	statsSigmaKey    = "Standard deviation [cm/us]"
)

// StatsIngestor 解析 drift_speed_stats_<V>V_<P>Torr.txt 形式的 "键: 值" 文件
type StatsIngestor struct{}

// NewStatsIngestor 创建统计文件加载器
func NewStatsIngestor() *StatsIngestor {
	return &StatsIngestor{}
}

// Load 解析一个统计文件为一个 Sample
func (s *StatsIngestor) Load(ctx context.Context, stream io.Reader) (domain.Sample, error) {
	source := domain.SourceFromContext(ctx)

	values := make(map[string]string)
	rows := make(map[string]int)
	scan := bufio.NewScanner(stream)
	row := 0
	for scan.Scan() {
		row++
		key, val, ok := strings.Cut(scan.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		values[key] = strings.TrimSpace(val)
		rows[key] = row
	}
	if err := scan.Err(); err != nil {
		return domain.Sample{}, fmt.Errorf("%s: %w", source, err)
	}

	// 必需键先全部校验，再解析
	keys := []string{statsVoltageKey, statsPressureKey, statsMeanKey, statsSigmaKey}
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			return domain.Sample{}, &domain.ColumnError{File: source, Column: k}
		}
	}
	parsed := make([]float64, len(keys))
	for i, k := range keys {
		v, err := parseFloatField([]string{values[k]}, 0, k, source, rows[k])
		if err != nil {
			return domain.Sample{}, err
		}
		parsed[i] = v
	}

	return domain.Sample{
		Voltage:     parsed[0],
		Pressure:    parsed[1],
		Speed:       parsed[2],
		SpeedStdDev: parsed[3],
	}, nil
}

// LoadFiles 依次解析多个统计文件
func (s *StatsIngestor) LoadFiles(ctx context.Context, paths ...string) ([]domain.Sample, error) {
	out := make([]domain.Sample, 0, len(paths))
	for _, p := range paths {
		sample, err := s.loadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, nil
}

func (s *StatsIngestor) loadFile(ctx context.Context, path string) (domain.Sample, error) {
	f, err := openFile(path)
	if err != nil {
		return domain.Sample{}, err
	}
	defer f.Close()
	return s.Load(withSource(ctx, path), f)
}

// CsvSampleWriter 按 GasTableSchema 写出样本表
type CsvSampleWriter struct {
	schema Schema
}

// NewCsvSampleWriter 创建写出器; 写出的列名与 schema 一致，便于再次加载
func NewCsvSampleWriter(schema Schema) *CsvSampleWriter {
	return &CsvSampleWriter{schema: schema}
}

// Write 写出表头和全部样本
func (w *CsvSampleWriter) Write(out io.Writer, samples []domain.Sample) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(w.schema.columns()); err != nil {
		return err
	}
	for _, s := range samples {
		record := []string{
			formatFloat(s.Voltage),
			formatFloat(s.Pressure),
			formatFloat(s.Speed),
			formatFloat(s.SpeedStdDev),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile 先写同目录下的临时文件再改名，失败时不留下残缺的表
func (w *CsvSampleWriter) WriteFile(path string, samples []domain.Sample) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".driftana-*.csv")
	if err != nil {
		return fmt.Errorf("create temp table: %w", err)
	}
	name := tmp.Name()

	if err := w.Write(tmp, samples); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
