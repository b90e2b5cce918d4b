package main

//
// Distance study
//

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/renjie/driftkit/internal/config"
	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/adapters/render"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/services"
)

// distanceSubcommand 把各电压下的轨迹按漂移距离分为短程/长程两个总体
// 每个电压写一张速度直方图，所有电压合写一张 速度-距离 散点图
func distanceSubcommand(opts *rootOptions) *cobra.Command {
	var (
		traces   []string
		voltages []float64
		pressure float64
		outDir   string
		format   string
	)
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Split drift traces into short and long distance populations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(voltages) != 0 && len(voltages) != len(traces) {
				return fmt.Errorf("%w: got %d traces but %d voltages", domain.ErrInvalidConfig, len(traces), len(voltages))
			}
			ctx := opts.runContext(cmd, firstOf(traces))
			spec, err := opts.cfg.ClassifierSpec(config.ClassifierDistance)
			if err != nil {
				return err
			}
			classifier, err := opts.cfg.Classifier(config.ClassifierDistance)
			if err != nil {
				return err
			}

			loader := ingest.NewDistanceIngestor()
			loaded := make([]*domain.DistanceTrace, 0, len(traces))
			for i, path := range traces {
				v := 0.0
				if len(voltages) > 0 {
					v = voltages[i]
				}
				tr, err := loader.LoadFile(ctx, path, v, pressure)
				if err != nil {
					return err
				}
				loaded = append(loaded, tr)
			}
			if err := checkVoltages(traces, loaded); err != nil {
				return err
			}

			// 先完成全部分类，再开始写图
			type population struct {
				trace  *domain.DistanceTrace
				series []render.HistogramSeries
			}
			pops := make([]population, 0, len(loaded))
			for _, tr := range loaded {
				part, err := services.PartitionBy(tr.Points, distanceOf, classifier)
				if err != nil {
					return err
				}
				series := make([]render.HistogramSeries, 0, len(part.Labels))
				for _, label := range part.Labels {
					velocities := velocitiesOf(part.Bucket(label))
					series = append(series, render.HistogramSeries{
						Label:  fmt.Sprintf("%s distance (≈%.2f cm)", populationName(label), spec.Parameters[label]),
						Values: velocities,
					})
					logPopulation(ctx, tr, label, velocities)
				}
				pops = append(pops, population{trace: tr, series: series})
			}

			for _, p := range pops {
				fig, err := render.VelocityHistogram(p.series, opts.cfg.HistogramBins, render.Options{
					Title: title(ctx, fmt.Sprintf("Drift Velocity Distribution at HV=%gV", p.trace.Voltage)),
				})
				if err != nil {
					return err
				}
				name := fmt.Sprintf("velocity_hist_%gV.%s", p.trace.Voltage, format)
				if err := save(fig, filepath.Join(outDir, name)); err != nil {
					return err
				}
			}

			fig, err := render.DistanceScatter(loaded, render.Options{
				Title: title(ctx, "Drift Velocity vs Distance Travelled"),
			})
			if err != nil {
				return err
			}
			return save(fig, filepath.Join(outDir, "velocity_vs_distance."+format))
		},
	}
	cmd.Flags().StringSliceVarP(&traces, "trace", "t", nil, "velocity-distance trace (CSV or JSON, repeatable)")
	cmd.Flags().Float64SliceVar(&voltages, "voltage", nil, "high voltage of each trace [V], in the order of --trace")
	cmd.Flags().Float64Var(&pressure, "pressure", 0, "gas pressure of the traces [Torr]")
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for the output images")
	cmd.Flags().StringVar(&format, "format", "png", "image format: png, svg or pdf")
	_ = cmd.MarkFlagRequired("trace")
	return cmd
}

// checkVoltages 每条轨迹必须有各不相同的电压，直方图文件按电压命名
func checkVoltages(paths []string, traces []*domain.DistanceTrace) error {
	seen := make(map[float64]string, len(traces))
	for i, tr := range traces {
		if tr.Voltage == 0 {
			return fmt.Errorf("%w: trace %s has no voltage, pass --voltage", domain.ErrInvalidConfig, paths[i])
		}
		if prev, ok := seen[tr.Voltage]; ok {
			return fmt.Errorf("%w: traces %s and %s share HV=%gV", domain.ErrInvalidConfig, prev, paths[i], tr.Voltage)
		}
		seen[tr.Voltage] = paths[i]
	}
	return nil
}

// 距离可能带符号 (方向)，分类规则内部取绝对值
func distanceOf(p domain.DistanceSample) float64 { return p.Distance }

func velocitiesOf(points []domain.DistanceSample) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Velocity
	}
	return out
}

func populationName(label string) string {
	switch label {
	case domain.PopulationShort:
		return "Short"
	case domain.PopulationLong:
		return "Long"
	}
	return label
}

func logPopulation(ctx context.Context, tr *domain.DistanceTrace, label string, velocities []float64) {
	run, _ := domain.FromContext(ctx)
	if len(velocities) == 0 {
		slog.Warn("empty population", "voltage", tr.Voltage, "population", label)
		return
	}
	sum, err := services.Summarize(velocities)
	if err != nil {
		slog.Warn("summarize population", "voltage", tr.Voltage, "population", label, "err", err)
		return
	}
	slog.Info("population",
		"run", run,
		"voltage", tr.Voltage,
		"population", label,
		"count", sum.Count,
		"mean", sum.Mean,
		"sigma", sum.StdDev,
	)
}
