package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/internal/logging"
	"github.com/ludo-technologies/xingstat/service"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	verbose    bool
	overrides  config.Overrides
}

// loadConfig resolves the configuration for cmd and sets up logging.
// Flags override the file only when they were set explicitly.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	cfg, err := config.LoadConfigWithTarget(o.configPath, cwd)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyOverrides(o.overrides, newFlagTracker(cmd)); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}

	level := cfg.Logging.Level
	if o.verbose {
		level = "debug"
	}
	logging.Setup(level, cfg.Logging.Format, cmd.ErrOrStderr())
	slog.Debug("configuration resolved",
		"data", cfg.Data.Path,
		"window_size", cfg.Report.WindowSize,
		"threshold_percent", cfg.Report.ThresholdPercent,
		"output_dir", cfg.Output.Directory)

	return cfg, nil
}

// loadTable loads the configured dataset
func (o *rootOptions) loadTable(cmd *cobra.Command, cfg *config.Config) (*domain.Table, error) {
	return service.NewTableLoader(cfg.Data.Sheet).Load(cmd.Context(), cfg.Data.Path)
}

// formatUtils returns text styling for w, colored only on a terminal
func formatUtils(cfg *config.Config, w io.Writer) *service.FormatUtils {
	return service.NewFormatUtils(!cfg.Output.NoColor && service.IsTerminal(w))
}

// reportFormatter builds the formatter used by every command
func reportFormatter(cfg *config.Config, w io.Writer) *service.ReportFormatterImpl {
	return service.NewReportFormatter(formatUtils(cfg, w), service.NewChartRenderer(cfg.Chart.SecondaryScale))
}
