package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/app"
	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

// ExportCommand writes every report for every category to a directory
type ExportCommand struct {
	root        *rootOptions
	format      string
	concurrency int
}

// CreateCobraCommand creates the cobra command for the batch export
func (e *ExportCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every report for every category to the output directory",
		Long: `Write the listing, window statistics and year on year reports of every
category, plus the chart, as one file each in the output directory.

Reports are generated concurrently. Files that were written are kept even if
other reports fail.

Examples:
  xingstat export
  xingstat export --format csv --output-dir out/
  xingstat export --format html --concurrency 2`,
		Args: cobra.NoArgs,
		RunE: e.run,
	}
	cmd.Flags().StringVarP(&e.format, "format", "f", "", "Report format: text, json, yaml, csv, html (default: output.format)")
	cmd.Flags().IntVar(&e.concurrency, "concurrency", 0, "Maximum reports generated at once (0 = unlimited)")
	return cmd
}

func (e *ExportCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := e.root.loadConfig(cmd)
	if err != nil {
		return err
	}

	formatName := e.format
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := domain.ParseOutputFormat(formatName)
	if err != nil {
		return err
	}
	if e.concurrency < 0 {
		return domain.NewInvalidInputError("--concurrency cannot be negative", nil)
	}

	progress := service.NewProgressManager("Exporting")
	progress.SetWriter(cmd.ErrOrStderr())

	uc, err := app.NewExportUseCaseBuilder().
		WithLoader(service.NewTableLoader(cfg.Data.Sheet)).
		WithService(service.NewReportService()).
		WithFormatter(service.NewReportFormatter(service.NewFormatUtils(false), service.NewChartRenderer(cfg.Chart.SecondaryScale))).
		WithExecutor(service.NewParallelExecutor()).
		WithProgress(progress).
		Build()
	if err != nil {
		return err
	}

	response, err := uc.Execute(cmd.Context(), domain.ExportRequest{
		DataPath:         cfg.Data.Path,
		Format:           format,
		Directory:        cfg.Output.Directory,
		WindowSize:       cfg.Report.WindowSize,
		ThresholdPercent: cfg.Report.ThresholdPercent,
		ListingCategory:  cfg.Report.ListingCategory,
		ChartRoles:       cfg.ChartRoles(),
		Concurrency:      e.concurrency,
	})
	if response != nil {
		out := cmd.OutOrStdout()
		for _, file := range response.Files {
			fmt.Fprintln(out, file)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", describeCount(len(response.Files), "report"), response.Directory)
	}
	return err
}

// NewExportCmd creates and returns the export cobra command
func NewExportCmd(root *rootOptions) *cobra.Command {
	return (&ExportCommand{root: root}).CreateCobraCommand()
}
