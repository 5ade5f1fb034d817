package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/app"
	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/service"
)

var reportCommandKinds = []domain.ReportKind{
	domain.ReportKindListing,
	domain.ReportKindWindowStats,
	domain.ReportKindYearOverYear,
	domain.ReportKindChart,
}

var reportDescriptions = map[domain.ReportKind]struct{ short, long string }{
	domain.ReportKindListing: {
		"Print the yearly counts of one category",
		`Print the count of a category for every year of the table.

Without --category the configured listing category is used (buses by default).

Examples:
  xingstat listing
  xingstat listing --category "Loaded Trucks" --csv`,
	},
	domain.ReportKindWindowStats: {
		"Print the mean and peak over the leading years",
		`Print the truncated mean and the peak year of a category over the first
--window years of the table.

Examples:
  xingstat stats --category B
  xingstat stats --category "personal vehicles" --window 5 --json`,
	},
	domain.ReportKindYearOverYear: {
		"Print year on year changes and flag large increases",
		`Print the percentage change between every pair of consecutive years and
list the pairs whose increase is strictly above --threshold percent.

Examples:
  xingstat yoy --category C
  xingstat yoy --category buses --threshold 2.5 --yaml`,
	},
	domain.ReportKindChart: {
		"Build the passengers per bus and personal vehicles charts",
		`Compute the ratio series (bus passengers per bus by default) and the scaled
secondary series (personal vehicles in thousands by default).

Text output prints the series as a table. --html writes a page with both
charts to the output directory and opens it. --images writes the two panels
as chart.image_format (svg or png) files.

Examples:
  xingstat chart
  xingstat chart --html
  xingstat chart --images --output-dir out/`,
	},
}

// ReportCommand runs one report non-interactively
type ReportCommand struct {
	root *rootOptions
	kind domain.ReportKind

	category string
	output   string
	images   bool
	formats  formatFlags
}

// NewReportCmd creates the cobra command for one report kind
func NewReportCmd(root *rootOptions, kind domain.ReportKind) *cobra.Command {
	c := &ReportCommand{root: root, kind: kind}
	desc := reportDescriptions[kind]

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: desc.short,
		Long:  desc.long,
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	if kind.NeedsCategory() {
		cmd.Flags().StringVar(&c.category, "category", "", "Category name or selection code (A, B, ...)")
	}
	cmd.Flags().BoolVar(&c.formats.html, "html", false, "Generate HTML report file")
	cmd.Flags().BoolVar(&c.formats.json, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&c.formats.csv, "csv", false, "Output CSV")
	cmd.Flags().BoolVar(&c.formats.yaml, "yaml", false, "Output YAML")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Write the report to this file instead of stdout")
	if kind == domain.ReportKindChart {
		cmd.Flags().BoolVar(&c.images, "images", false, "Write both chart panels as image files")
	}

	return cmd
}

func (c *ReportCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := c.root.loadConfig(cmd)
	if err != nil {
		return err
	}

	format, err := c.formats.determineOutputFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	if c.kind.NeedsCategory() && c.kind != domain.ReportKindListing && c.category == "" {
		return domain.NewInvalidInputError(fmt.Sprintf("the %s report needs --category", c.kind), nil)
	}

	out := cmd.OutOrStdout()
	req := domain.DefaultReportRequest(c.kind)
	req.Category = c.category
	req.WindowSize = cfg.Report.WindowSize
	req.ThresholdPercent = cfg.Report.ThresholdPercent
	req.ListingCategory = cfg.Report.ListingCategory
	req.ChartRoles = cfg.ChartRoles()
	req.OutputFormat = format
	req.OutputWriter = out
	req.OutputPath = c.output
	req.NoOpen = !shouldOpenBrowser(cfg)

	// HTML always goes to a file
	if format == domain.OutputFormatHTML && req.OutputPath == "" {
		req.OutputPath, err = app.OutputFilePath(cfg.Output.Directory, string(c.kind), format, time.Now())
		if err != nil {
			return err
		}
	}

	if c.images {
		return c.writeImages(cmd, cfg)
	}

	uc, err := app.NewReportUseCaseBuilder().
		WithLoader(service.NewTableLoader(cfg.Data.Sheet)).
		WithService(service.NewReportService()).
		WithFormatter(reportFormatter(cfg, out)).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return err
	}

	return uc.Execute(cmd.Context(), cfg.Data.Path, req)
}

// writeImages renders both chart panels into the output directory
func (c *ReportCommand) writeImages(cmd *cobra.Command, cfg *config.Config) error {
	table, err := c.root.loadTable(cmd, cfg)
	if err != nil {
		return err
	}

	req := domain.DefaultReportRequest(domain.ReportKindChart)
	req.ChartRoles = cfg.ChartRoles()
	response, err := service.NewReportService().Generate(cmd.Context(), table, req)
	if err != nil {
		return err
	}

	renderer := service.NewChartRenderer(cfg.Chart.SecondaryScale)
	var ratio, secondary []byte
	if cfg.Chart.ImageFormat == "png" {
		ratio, secondary, err = renderer.RenderPNG(response.Chart)
	} else {
		ratio, secondary, err = renderer.RenderSVG(response.Chart)
	}
	if err != nil {
		return err
	}

	if err := app.EnsureDirectory(cfg.Output.Directory); err != nil {
		return err
	}
	stamp := time.Now().Format("20060102_150405")
	for name, data := range map[string][]byte{"ratio": ratio, "secondary": secondary} {
		path := filepath.Join(cfg.Output.Directory, fmt.Sprintf("chart_%s_%s.%s", name, stamp, cfg.Chart.ImageFormat))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to write %s", path), err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Chart image written: %s\n", path)
	}
	return nil
}
