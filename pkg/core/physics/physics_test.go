package physics_test

import (
	"errors"
	"math"
	"testing"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/physics"
)

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

func TestVoltageToField(t *testing.T) {
	// 196 MOhm 上的分压除以 0.735 cm
	want := (196 * (1000 / 1209.7)) / 0.735
	got := physics.VoltageToField(1000)
	if relDiff(got, want) > 1e-12 {
		t.Fatalf("Expected %v V/cm, got %v", want, got)
	}
	if math.Abs(got-220.2) > 0.5 {
		t.Errorf("Expected roughly 220 V/cm at 1 kV, got %v", got)
	}
}

func TestFieldVoltageRoundTrip(t *testing.T) {
	d := physics.DefaultDivider()
	for v := 0.0; v <= 5000; v += 12.5 {
		back := d.FieldToVoltage(d.VoltageToField(v))
		if relDiff(back, v) > 1e-9 {
			t.Fatalf("Round trip at %v V returned %v", v, back)
		}
	}
}

func TestNumberDensityIncreasesWithPressure(t *testing.T) {
	prev := -1.0
	for p := 0.0; p <= 3000; p += 50 {
		n, err := physics.NumberDensity(p, physics.RoomTemperature)
		if err != nil {
			t.Fatalf("NumberDensity(%v): %v", p, err)
		}
		if n <= prev {
			t.Fatalf("Density not increasing at %v Torr: %v <= %v", p, n, prev)
		}
		prev = n
	}
}

func TestPressureFromDensityInvertsNumberDensity(t *testing.T) {
	n, err := physics.NumberDensity(1498, physics.RoomTemperature)
	if err != nil {
		t.Fatalf("NumberDensity failed: %v", err)
	}
	// TorrPerPascal 只保留了 6 位有效数字
	if p := physics.PressureFromDensity(n, physics.RoomTemperature); relDiff(p, 1498) > 1e-5 {
		t.Errorf("Expected ~1498 Torr, got %v", p)
	}
}

func TestZeroDivisors(t *testing.T) {
	if _, err := physics.NumberDensity(1498, 0); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Errorf("Zero temperature: expected ErrDivisionByZero, got %v", err)
	}
	for _, temp := range []float64{-293.15, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if n, err := physics.NumberDensity(1498, temp); !errors.Is(err, domain.ErrDivisionByZero) {
			t.Errorf("Temperature %v: expected ErrDivisionByZero, got n=%v err=%v", temp, n, err)
		}
	}
	if _, err := physics.ReducedFieldN(220, 0); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Errorf("Zero density: expected ErrDivisionByZero, got %v", err)
	}
	if _, err := physics.ReducedFieldP(220, 0); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Errorf("Zero pressure: expected ErrDivisionByZero, got %v", err)
	}

	bad := physics.Divider{TotalResistance: 1209.7, DriftResistance: 196, DriftLength: 0}
	if err := bad.Validate(); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Errorf("Zero drift length: expected ErrDivisionByZero, got %v", err)
	}
	bad = physics.Divider{TotalResistance: math.NaN(), DriftResistance: 196, DriftLength: 11.6}
	if err := bad.Validate(); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Errorf("NaN total resistance: expected ErrDivisionByZero, got %v", err)
	}
}
