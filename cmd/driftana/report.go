package main

//
// Text reports
//

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/renjie/driftkit/internal/config"
	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/services"
)

// anomaliesSubcommand 列出低场区的样本，并给出由 E 与 E/N 反推的压强和电压
func anomaliesSubcommand(opts *rootOptions) *cobra.Command {
	flags := &tableFlags{}
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "List samples below the low-field threshold with back-computed P and V",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, firstOf(flags.inputs))
			classifier, err := opts.cfg.Classifier(config.ClassifierLowField)
			if err != nil {
				return err
			}
			samples, schema, err := loadTable(ctx, opts.cfg, flags)
			if err != nil {
				return err
			}
			norm := opts.cfg.Normalizer(schema)
			result, err := services.NewPipeline(services.WithNormalizer(norm)).Run(ctx, samples)
			if err != nil {
				return err
			}
			anomalies, err := services.LowFieldAnomalies(result.Derived, classifier, norm)
			if err != nil {
				return err
			}
			slog.Debug("low-field anomalies", "source", firstOf(flags.inputs), "count", len(anomalies))
			writeAnomalies(cmd.OutOrStdout(), anomalies)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&flags.inputs, "input", "i", nil, "input CSV table (repeat to merge several runs)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "column schema: gas-table or legacy-sweep")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func writeAnomalies(w io.Writer, anomalies []domain.Anomaly) {
	if len(anomalies) == 0 {
		fmt.Fprintln(w, color.GreenString("no samples below the low-field threshold"))
		return
	}
	header := color.New(color.Bold, color.FgCyan)
	header.Fprintf(w, "%12s %12s %16s %12s\n", "P [Torr]", "V [V]", "speed [cm/s]", "E [V/cm]")
	for _, a := range anomalies {
		fmt.Fprintf(w, "%12.3f %12.3f %16.6g %12s\n",
			a.Pressure, a.Voltage, a.Speed, color.RedString("%12.3f", a.Field))
	}
	fmt.Fprintf(w, "%s %d\n", color.YellowString("total:"), len(anomalies))
}

// summarySubcommand 每个分组的速度统计
func summarySubcommand(opts *rootOptions) *cobra.Command {
	flags := &tableFlags{}
	var key string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print drift speed statistics per pressure or voltage group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, firstOf(flags.inputs))
			groupKey := domain.GroupKey(key)
			samples, schema, err := loadTable(ctx, opts.cfg, flags)
			if err != nil {
				return err
			}
			result, err := services.NewPipeline(
				services.WithNormalizer(opts.cfg.Normalizer(schema)),
				services.WithGroupKey(groupKey),
			).Run(ctx, samples)
			if err != nil {
				return err
			}
			sums, err := services.SummarizeGroups(result.Groups, speedOf)
			if err != nil {
				return err
			}
			writeSummaries(cmd.OutOrStdout(), groupKey, sums)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&flags.inputs, "input", "i", nil, "input CSV table (repeat to merge several runs)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "column schema: gas-table or legacy-sweep")
	cmd.Flags().StringVar(&key, "key", string(domain.GroupByPressure), "group by: pressure or voltage")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func speedOf(s domain.DerivedSample) float64 { return s.SpeedCMPerSecond }

func writeSummaries(w io.Writer, key domain.GroupKey, sums []services.GroupSummary) {
	header := color.New(color.Bold, color.FgCyan)
	header.Fprintf(w, "%12s %6s %14s %14s %14s %14s %14s\n",
		key, "n", "mean [cm/s]", "sigma", "median", "min", "max")
	for _, s := range sums {
		fmt.Fprintf(w, "%12g %6d %14.6g %14.6g %14.6g %14.6g %14.6g\n",
			s.Key, s.Count, s.Mean, s.StdDev, s.Median, s.Min, s.Max)
	}
}

// collectSubcommand 把单次模拟的统计文件合并成一张测量表
func collectSubcommand(opts *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "collect STATS_FILE...",
		Short: "Merge per-run drift speed stats files into one CSV table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, args[0])
			samples, err := ingest.NewStatsIngestor().LoadFiles(ctx, args...)
			if err != nil {
				return err
			}
			writer := ingest.NewCsvSampleWriter(ingest.GasTableSchema)
			if output == "" || output == "-" {
				return writer.Write(cmd.OutOrStdout(), samples)
			}

			if err := writer.WriteFile(output, samples); err != nil {
				return err
			}
			slog.Info("wrote table", "path", output, "samples", len(samples))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output CSV file (- for stdout)")
	return cmd
}
