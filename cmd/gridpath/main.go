// Command gridpath loads grid scenarios from YAML and plans paths across them.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridastar/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	configPath string
	logLevel   string
	color      string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "gridpath",
		Short: "Plan paths across grid scenarios",
		Long: `gridpath runs budget-bounded A* searches over maps described in YAML
scenario files and draws the result in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.StringVar(&a.color, "color", config.ColorAuto, "color output: auto, always or never")

	root.AddCommand(
		newFindCmd(a),
		newBatchCmd(a),
		newWatchCmd(a),
		newLineCmd(),
		newGenCmd(),
	)
	return root
}

// setup loads the config, applies explicitly set flags on top and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = a.color
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.logger.Debug("config loaded",
		slog.String("path", a.configPath),
		slog.Int("workers", cfg.Workers),
		slog.Int("step_budget", cfg.Search.StepBudget),
	)
	return nil
}
