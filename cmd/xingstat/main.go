package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/internal/version"
	"github.com/ludo-technologies/xingstat/service"
)

// NewRootCmd builds the command tree. Running it without a subcommand starts
// the interactive session.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "xingstat",
		Short: "Border crossing traffic reports",
		Long: `xingstat reads a table of yearly border crossing counts and prints
canned reports about it.

Without a subcommand it starts the interactive menu:
  A  yearly counts for the listing category (buses by default)
  B  mean and peak over the leading window of years for a chosen category
  C  year on year changes for a chosen category, flagging large increases
  D  bus passengers per bus and personal vehicles charts, written as HTML

The same reports are available non-interactively through the listing,
stats, yoy and chart subcommands.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          opts.runSession,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVarP(&opts.overrides.DataPath, config.FlagData, "d", config.DefaultDataPath, "Dataset file or glob pattern (.csv or .xlsx)")
	flags.StringVar(&opts.overrides.Sheet, config.FlagSheet, "", "Worksheet to read from .xlsx files (default: first sheet)")
	flags.IntVar(&opts.overrides.WindowSize, config.FlagWindow, 8, "Number of leading years used by the window statistics")
	flags.Float64Var(&opts.overrides.ThresholdPercent, config.FlagThreshold, 5.0, "Year on year increase (percent) above which a pair is flagged")
	flags.StringVar(&opts.overrides.ListingCategory, config.FlagListingCategory, "buses", "Category listed by menu entry A")
	flags.StringVar(&opts.overrides.OutputDirectory, config.FlagOutputDir, "", "Directory for chart pages and exports")
	flags.BoolVar(&opts.overrides.NoOpen, config.FlagNoOpen, false, "Don't auto-open HTML in browser")
	flags.BoolVar(&opts.overrides.NoColor, config.FlagNoColor, false, "Disable colored output")
	flags.BoolVar(&opts.overrides.NoPause, config.FlagNoPause, false, "Don't wait for Enter after each report")
	flags.StringVar(&opts.overrides.LogLevel, config.FlagLogLevel, config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&opts.overrides.LogFormat, config.FlagLogFormat, config.DefaultLogFormat, "Log format: text, json")

	for _, kind := range reportCommandKinds {
		rootCmd.AddCommand(NewReportCmd(opts, kind))
	}
	rootCmd.AddCommand(NewCategoriesCmd(opts))
	rootCmd.AddCommand(NewExportCmd(opts))
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func main() {
	// A missing .env is not an error
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError prints err with its category and recovery suggestions
func printError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "Interrupted")
		return
	}

	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "\n%s: %s\n", categorized.Category, categorized.Message)
	fmt.Fprintln(w, "Suggestions:")
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", s)
	}
}
