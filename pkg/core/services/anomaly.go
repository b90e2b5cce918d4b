package services

import (
	"fmt"

	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/physics"
	"github.com/renjie/driftkit/pkg/core/ports"
)

// LowFieldAnomalies 列出落在低场区的样本，并从 E 和 E/N 反推压强与电压
// 反推值与源数据一致说明换算链是自洽的，偏平的 E/N 点来自低场本身。
func LowFieldAnomalies(samples []domain.DerivedSample, c ports.Classifier, n *physics.Normalizer) ([]domain.Anomaly, error) {
	part, err := PartitionBy(samples, fieldOf, c)
	if err != nil {
		return nil, err
	}

	low := part.Bucket(domain.RegimeLowField)
	out := make([]domain.Anomaly, 0, len(low))
	for _, s := range low {
		if s.ReducedFieldN == 0 {
			return nil, fmt.Errorf("sample V=%v P=%v: %w", s.Voltage, s.Pressure,
				&domain.ZeroDivisorError{Quantity: "reduced field E/N"})
		}
		density := s.Field / s.ReducedFieldN
		out = append(out, domain.Anomaly{
			Pressure: physics.PressureFromDensity(density, n.Temperature()),
			Voltage:  n.Divider().FieldToVoltage(s.Field),
			Speed:    s.SpeedCMPerSecond,
			Field:    s.Field,
			Source:   s,
		})
	}
	return out, nil
}
