// Command driftana 漂移速度分析: 读取模拟/测量表，换算物理量，分组并出图
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/renjie/driftkit/internal/config"
	"github.com/renjie/driftkit/pkg/core/domain"
)

// rootOptions 所有子命令共享的全局参数
type rootOptions struct {
	configPath string
	verbose    bool
	gas        string

	cfg *config.Config
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "driftana:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "driftana",
		Short:         "Drift velocity analysis for gas detector simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.InitLogger(opts.verbose)
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			slog.Debug("configuration loaded",
				"config", opts.configPath,
				"temperature", cfg.Physics.Temperature,
				"classifiers", len(cfg.Classifiers),
			)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "HuJSON configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.gas, "gas", "", "gas name used in plot titles")

	root.AddCommand(
		speedVoltageSubcommand(opts),
		reducedFieldSubcommand(opts),
		distanceSubcommand(opts),
		efieldSubcommand(opts),
		anomaliesSubcommand(opts),
		summarySubcommand(opts),
		collectSubcommand(opts),
	)
	return root
}

// runContext 在 ctx 中记录本次运行的输入与标签
func (o *rootOptions) runContext(cmd *cobra.Command, source string) context.Context {
	return domain.NewContext(cmd.Context(), domain.RunInfo{
		Source: source,
		Gas:    o.gas,
		Label:  cmd.Name(),
	})
}

// title 带上 ctx 中气体名称的图标题
func title(ctx context.Context, base string) string {
	run, _ := domain.FromContext(ctx)
	if run.Gas == "" {
		return base
	}
	return fmt.Sprintf("%s (%s)", base, run.Gas)
}

func firstOf(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
