package main

//
// Plot subcommands
//

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/renjie/driftkit/internal/config"
	"github.com/renjie/driftkit/pkg/adapters/ingest"
	"github.com/renjie/driftkit/pkg/adapters/render"
	"github.com/renjie/driftkit/pkg/core/domain"
	"github.com/renjie/driftkit/pkg/core/ports"
	"github.com/renjie/driftkit/pkg/core/services"
)

// tableFlags 读取测量表的子命令共用的参数
type tableFlags struct {
	inputs []string
	schema string
	output string
}

func (f *tableFlags) register(cmd *cobra.Command, defaultOutput string) {
	cmd.Flags().StringSliceVarP(&f.inputs, "input", "i", nil, "input CSV table (repeat to merge several runs)")
	cmd.Flags().StringVar(&f.schema, "schema", "", "column schema: gas-table or legacy-sweep")
	cmd.Flags().StringVarP(&f.output, "output", "o", defaultOutput, "output image (.png, .svg, .pdf)")
	_ = cmd.MarkFlagRequired("input")
}

// loadTable 按列名方案加载并依次合并输入表
func loadTable(ctx context.Context, cfg *config.Config, f *tableFlags) ([]domain.Sample, ingest.Schema, error) {
	schema, err := cfg.SampleSchema(f.schema)
	if err != nil {
		return nil, ingest.Schema{}, err
	}
	samples, err := ingest.NewCsvSampleIngestor(schema).LoadMany(ctx, f.inputs...)
	if err != nil {
		return nil, ingest.Schema{}, err
	}
	slog.Debug("loaded table", "schema", schema.Name, "files", len(f.inputs), "samples", len(samples))
	return samples, schema, nil
}

func save(fig ports.Figure, path string) error {
	if err := fig.Save(path); err != nil {
		return err
	}
	slog.Info("wrote figure", "path", path)
	return nil
}

// speedVoltageSubcommand 速度-电压曲线，每个压强一条
func speedVoltageSubcommand(opts *rootOptions) *cobra.Command {
	flags := &tableFlags{}
	cmd := &cobra.Command{
		Use:   "speed-voltage",
		Short: "Plot drift speed against voltage, one curve per pressure",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, firstOf(flags.inputs))
			samples, schema, err := loadTable(ctx, opts.cfg, flags)
			if err != nil {
				return err
			}
			pipeline := services.NewPipeline(
				services.WithNormalizer(opts.cfg.Normalizer(schema)),
				services.WithGroupKey(domain.GroupByPressure),
			)
			result, err := pipeline.Run(ctx, samples)
			if err != nil {
				return err
			}
			fig, err := render.SpeedVoltage(result.Groups, render.Options{
				Title: title(ctx, "Drift Speed vs Voltage"),
			})
			if err != nil {
				return err
			}
			return save(fig, flags.output)
		},
	}
	flags.register(cmd, "speed_vs_voltage.png")
	return cmd
}

// reducedFieldSubcommand 速度-约化场散点
func reducedFieldSubcommand(opts *rootOptions) *cobra.Command {
	flags := &tableFlags{}
	var axis string
	var threshold bool
	cmd := &cobra.Command{
		Use:   "reduced-field",
		Short: "Plot drift speed against E/N or E/P",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, firstOf(flags.inputs))
			schema, err := opts.cfg.SampleSchema(flags.schema)
			if err != nil {
				return err
			}
			pipeOpts := []services.PipelineOption{services.WithNormalizer(opts.cfg.Normalizer(schema))}
			if threshold {
				spec, err := opts.cfg.ClassifierSpec(config.ClassifierLowField)
				if err != nil {
					return err
				}
				pipeOpts = append(pipeOpts, services.WithFieldRule(spec))
			}

			samples, _, err := loadTable(ctx, opts.cfg, flags)
			if err != nil {
				return err
			}
			result, err := services.NewPipeline(pipeOpts...).Run(ctx, samples)
			if err != nil {
				return err
			}

			ax := render.ReducedAxis(axis)
			fig, err := render.ReducedField(result.Derived, result.Regimes, ax, render.Options{
				Title: title(ctx, fmt.Sprintf("Drift Speed vs %s", reducedName(ax))),
			})
			if err != nil {
				return err
			}
			return save(fig, flags.output)
		},
	}
	flags.register(cmd, "speed_vs_reduced_field.png")
	cmd.Flags().StringVar(&axis, "axis", string(render.AxisEOverN), "x axis: en (E/N) or ep (E/P)")
	cmd.Flags().BoolVar(&threshold, "threshold", false, "highlight samples below the low-field threshold")
	return cmd
}

func reducedName(a render.ReducedAxis) string {
	if a == render.AxisEOverP {
		return "E/P"
	}
	return "E/N"
}

// efieldSubcommand 电场剖面图，标出各漂移区边界
func efieldSubcommand(opts *rootOptions) *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "efield",
		Short: "Plot the electric field profile along the detector axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := opts.runContext(cmd, input)
			profile, err := ingest.NewProfileIngestor().LoadFile(ctx, input)
			if err != nil {
				return err
			}
			slog.Debug("loaded field profile", "source", input, "points", len(profile.Points))
			fig, err := render.FieldProfile(profile, opts.cfg.Regions, render.Options{
				Title: title(ctx, "E-field profile along the detector axis"),
			})
			if err != nil {
				return err
			}
			return save(fig, output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "field profile text file (z Ez per line)")
	cmd.Flags().StringVarP(&output, "output", "o", "efield_profile.png", "output image (.png or .svg)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
