package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/core/domain"
)

func TestCsvLoadGasTable(t *testing.T) {
	loader := ingest.NewCsvSampleIngestor(ingest.GasTableSchema)
	samples, err := loader.LoadFile(context.Background(), "testdata/gas_table.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []domain.Sample{
		{Voltage: 1000, Pressure: 1498, Speed: 0.01, SpeedStdDev: 0.001},
		{Voltage: 1400, Pressure: 1498, Speed: 0.02, SpeedStdDev: 0.001},
		{Voltage: 1000, Pressure: 1600, Speed: 0.009, SpeedStdDev: 0.0012},
	}
	if diff := cmp.Diff(want, samples); diff != "" {
		t.Errorf("Samples mismatch (-want +got):\n%s", diff)
	}
}

func TestCsvLoadLegacySweep(t *testing.T) {
	schema, err := ingest.SchemaByName("legacy-sweep")
	if err != nil {
		t.Fatalf("SchemaByName failed: %v", err)
	}
	samples, err := ingest.NewCsvSampleIngestor(schema).LoadFile(context.Background(), "testdata/legacy_sweep.csv")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(samples) != 2 || samples[1].Speed != 21000 {
		t.Errorf("Unexpected samples: %+v", samples)
	}
	if schema.SpeedUnit != domain.SpeedUnitCMPerSecond {
		t.Errorf("Legacy sweep speeds are in cm/s, got %s", schema.SpeedUnit)
	}
}

func TestCsvLoadMany(t *testing.T) {
	loader := ingest.NewCsvSampleIngestor(ingest.GasTableSchema)
	samples, err := loader.LoadMany(context.Background(), "testdata/gas_table.csv", "testdata/gas_table.csv")
	if err != nil {
		t.Fatalf("LoadMany failed: %v", err)
	}
	if len(samples) != 6 {
		t.Errorf("Expected 6 merged samples, got %d", len(samples))
	}
}

func TestCsvMissingColumnBeforeRows(t *testing.T) {
	// 第二行的数据也是坏的，但缺列必须先报告
	input := "Voltage[V],Pressure[Torr],StdDev[cm/us]\nabc,1498,0.001\n"
	ctx := domain.NewContext(context.Background(), domain.RunInfo{Source: "broken.csv"})

	samples, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).Load(ctx, strings.NewReader(input))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Fatalf("Expected ErrMissingColumn, got %v", err)
	}
	var ce *domain.ColumnError
	if !errors.As(err, &ce) || ce.Column != "MeanDriftSpeed[cm/us]" || ce.File != "broken.csv" {
		t.Errorf("Unexpected column error: %v", err)
	}
	if samples != nil {
		t.Errorf("Expected no samples")
	}
}

func TestCsvEmptyInput(t *testing.T) {
	_, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).Load(context.Background(), strings.NewReader(""))
	if !errors.Is(err, domain.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn for empty input, got %v", err)
	}
}

func TestCsvMalformedRow(t *testing.T) {
	type testcase struct {
		name   string
		input  string
		row    int
		column string
		value  string
	}
	header := "Voltage[V],Pressure[Torr],MeanDriftSpeed[cm/us],StdDev[cm/us]\n"
	cases := []testcase{
		{
			name:   "non numeric voltage",
			input:  header + "1000,1498,0.01,0.001\nabc,1498,0.01,0.001\n",
			row:    3,
			column: "Voltage[V]",
			value:  "abc",
		},
		{
			name:   "blank speed",
			input:  header + "1000,1498,,0.001\n",
			row:    2,
			column: "MeanDriftSpeed[cm/us]",
			value:  "",
		},
		{
			name:   "NaN pressure",
			input:  header + "1000,NaN,0.01,0.001\n",
			row:    2,
			column: "Pressure[Torr]",
			value:  "NaN",
		},
		{
			name:   "short record",
			input:  header + "1000,1498,0.01\n",
			row:    2,
			column: "StdDev[cm/us]",
			value:  "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := domain.NewContext(context.Background(), domain.RunInfo{Source: "sweep.csv"})
			samples, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).Load(ctx, strings.NewReader(tc.input))
			if !errors.Is(err, domain.ErrMalformedRow) {
				t.Fatalf("Expected ErrMalformedRow, got %v", err)
			}
			want := &domain.RowError{File: "sweep.csv", Row: tc.row, Column: tc.column, Value: tc.value}
			var got *domain.RowError
			if !errors.As(err, &got) {
				t.Fatalf("Expected RowError, got %T", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("RowError mismatch (-want +got):\n%s", diff)
			}
			if samples != nil {
				t.Errorf("Expected no samples on failure, got %d", len(samples))
			}
		})
	}
}

func TestCsvLoadGrouped(t *testing.T) {
	input := "Voltage[V],Pressure[Torr],MeanDriftSpeed[cm/us],StdDev[cm/us]\n" +
		"1000,1498,0.01,0.001\n" +
		"1400,1498,0.02,0.001\n"
	g, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).LoadGrouped(context.Background(), strings.NewReader(input), domain.GroupByPressure)
	if err != nil {
		t.Fatalf("LoadGrouped failed: %v", err)
	}
	bucket, ok := g.Get(1498.0)
	if g.Len() != 1 || !ok || len(bucket) != 2 {
		t.Fatalf("Expected one group 1498 with 2 samples, got %d groups", g.Len())
	}
	if bucket[0].Voltage != 1000 || bucket[1].Voltage != 1400 {
		t.Errorf("Group order not preserved: %+v", bucket)
	}
}

func TestSchemaByNameUnknown(t *testing.T) {
	if _, err := ingest.SchemaByName("garfield"); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFileRejectsDirectory(t *testing.T) {
	if _, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).LoadFile(context.Background(), "testdata"); err == nil {
		t.Errorf("Expected error when loading a directory")
	}
}
