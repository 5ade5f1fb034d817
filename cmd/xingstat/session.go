package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/app"
	"github.com/ludo-technologies/xingstat/internal/logging"
	"github.com/ludo-technologies/xingstat/service"
)

// runSession loads the dataset and runs the interactive menu on stdin/stdout
func (o *rootOptions) runSession(cmd *cobra.Command, args []string) error {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return err
	}

	table, err := o.loadTable(cmd, cfg)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	utils := formatUtils(cfg, out)

	uc, err := app.NewSessionUseCaseBuilder().
		WithTable(table).
		WithConsole(service.NewConsole(in, out)).
		WithService(service.NewReportService()).
		WithFormatter(reportFormatter(cfg, out)).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		WithFormatUtils(utils).
		WithOptions(app.SessionOptions{
			WindowSize:       cfg.Report.WindowSize,
			ThresholdPercent: cfg.Report.ThresholdPercent,
			ListingCategory:  cfg.Report.ListingCategory,
			ChartRoles:       cfg.ChartRoles(),
			ChartDirectory:   cfg.Output.Directory,
			NoOpen:           !shouldOpenBrowser(cfg),
			Pause:            !cfg.Output.NoPause && service.IsTerminal(in),
		}).
		WithLogger(logging.WithComponent("session")).
		Build()
	if err != nil {
		return err
	}

	return uc.Run(cmd.Context())
}
