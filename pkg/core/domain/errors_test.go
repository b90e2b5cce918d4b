package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/renjie/driftkit/pkg/core/domain"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	type testcase struct {
		err      error
		sentinel error
		contains string
	}
	cases := []testcase{
		{&domain.ColumnError{File: "a.csv", Column: "Voltage[V]"}, domain.ErrMissingColumn, `a.csv: missing required column "Voltage[V]"`},
		{&domain.RowError{File: "a.csv", Row: 3, Column: "Voltage[V]", Value: "abc"}, domain.ErrMalformedRow, `a.csv: row 3: column "Voltage[V]"`},
		{&domain.GroupError{Key: 1498}, domain.ErrEmptyGroup, "group 1498"},
		{&domain.ZeroDivisorError{Quantity: "number density"}, domain.ErrDivisionByZero, "number density is zero"},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("run: %w", tc.err)
		if !errors.Is(wrapped, tc.sentinel) {
			t.Errorf("%T: expected errors.Is(%v)", tc.err, tc.sentinel)
		}
		if !strings.Contains(tc.err.Error(), tc.contains) {
			t.Errorf("%T: message %q does not contain %q", tc.err, tc.err.Error(), tc.contains)
		}
	}
}

func TestSpeedUnit(t *testing.T) {
	if got := domain.SpeedUnitCMPerMicrosecond.ToCMPerSecond(0.5); got != 5e5 {
		t.Errorf("Expected 5e5 cm/s, got %v", got)
	}
	if got := domain.SpeedUnitCMPerSecond.ToCMPerSecond(42); got != 42 {
		t.Errorf("Expected 42 cm/s, got %v", got)
	}
	if domain.SpeedUnit("m/s").Valid() {
		t.Errorf("Expected m/s to be invalid")
	}
}
