package ingest_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/core/domain"
)

func TestStatsIngestorLoadFiles(t *testing.T) {
	samples, err := ingest.NewStatsIngestor().LoadFiles(context.Background(),
		"testdata/drift_speed_stats_1000V_1498Torr.txt",
		"testdata/drift_speed_stats_1400V_1498Torr.txt",
	)
	if err != nil {
		t.Fatalf("LoadFiles failed: %v", err)
	}
	want := []domain.Sample{
		{Voltage: 1000, Pressure: 1498, Speed: 0.0104, SpeedStdDev: 0.00091},
		{Voltage: 1400, Pressure: 1498, Speed: 0.0197, SpeedStdDev: 0.00102},
	}
	if diff := cmp.Diff(want, samples); diff != "" {
		t.Errorf("Samples mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsIngestorMissingKey(t *testing.T) {
	input := "Voltage [V]: 1000\nPressure [Torr]: 1498\nMean drift speed [cm/us]: 0.01\n"
	_, err := ingest.NewStatsIngestor().Load(context.Background(), strings.NewReader(input))
	var ce *domain.ColumnError
	if !errors.As(err, &ce) || ce.Column != "Standard deviation [cm/us]" {
		t.Errorf("Expected missing standard deviation, got %v", err)
	}
}

func TestCsvWriterRoundTrip(t *testing.T) {
	samples := []domain.Sample{
		{Voltage: 1000, Pressure: 1498, Speed: 0.0104, SpeedStdDev: 0.00091},
		{Voltage: 1400.5, Pressure: 1600, Speed: 0.0197, SpeedStdDev: 0.00102},
	}

	var buf bytes.Buffer
	if err := ingest.NewCsvSampleWriter(ingest.GasTableSchema).Write(&buf, samples); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Voltage[V],Pressure[Torr],MeanDriftSpeed[cm/us],StdDev[cm/us]\n") {
		t.Errorf("Unexpected header: %q", buf.String())
	}

	got, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).Load(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCsvWriterWriteFile(t *testing.T) {
	samples := []domain.Sample{{Voltage: 1000, Pressure: 1498, Speed: 0.0104, SpeedStdDev: 0.00091}}
	writer := ingest.NewCsvSampleWriter(ingest.GasTableSchema)
	dir := t.TempDir()

	// 1. Write and reload
	path := filepath.Join(dir, "collected.csv")
	if err := writer.WriteFile(path, samples); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ingest.NewCsvSampleIngestor(ingest.GasTableSchema).LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if diff := cmp.Diff(samples, got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}

	// 2. Failing rename keeps the target untouched
	target := filepath.Join(dir, "occupied")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := writer.WriteFile(target, samples); err == nil {
		t.Error("Expected an error when the target is a directory")
	}

	// 3. Missing directory
	if err := writer.WriteFile(filepath.Join(dir, "missing", "t.csv"), samples); err == nil {
		t.Error("Expected an error for a missing directory")
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".driftana-*"))
	if len(leftovers) != 0 {
		t.Errorf("Temp files left behind: %v", leftovers)
	}
}
