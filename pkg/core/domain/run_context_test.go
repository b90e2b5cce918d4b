package domain_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/renjie/driftkit/pkg/core/domain"
)

func TestRunInfoContext(t *testing.T) {
	if _, ok := domain.FromContext(context.Background()); ok {
		t.Fatal("Expected no RunInfo in a bare context")
	}
	info := domain.RunInfo{Source: "sweep.csv", Gas: "argon", Label: "summary"}
	ctx := domain.NewContext(context.Background(), info)

	got, ok := domain.FromContext(ctx)
	if !ok || got != info {
		t.Fatalf("Expected %+v, got %+v (ok=%v)", info, got, ok)
	}
	if src := domain.SourceFromContext(ctx); src != "sweep.csv" {
		t.Errorf("Expected source sweep.csv, got %q", src)
	}
}

func TestRunInfoLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("stage", "run", domain.RunInfo{Source: "sweep.csv", Gas: "argon", Label: "summary"})
	out := buf.String()
	for _, want := range []string{"run.source=sweep.csv", "run.gas=argon", "run.label=summary"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}

	buf.Reset()
	logger.Info("stage", "run", domain.RunInfo{Source: "sweep.csv"})
	if strings.Contains(buf.String(), "run.gas") || strings.Contains(buf.String(), "run.label") {
		t.Errorf("Empty fields must be omitted, got %q", buf.String())
	}
}
