package main

import (
	"fmt"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/service"
)

// formatFlags are the mutually exclusive output format switches
type formatFlags struct {
	html bool
	json bool
	csv  bool
	yaml bool
}

// determineOutputFormat picks the format from the flags, falling back to
// the configured output.format
func (f formatFlags) determineOutputFormat(configured string) (domain.OutputFormat, error) {
	formatCount := 0
	var format domain.OutputFormat

	if f.html {
		formatCount++
		format = domain.OutputFormatHTML
	}
	if f.json {
		formatCount++
		format = domain.OutputFormatJSON
	}
	if f.csv {
		formatCount++
		format = domain.OutputFormatCSV
	}
	if f.yaml {
		formatCount++
		format = domain.OutputFormatYAML
	}

	if formatCount > 1 {
		return "", domain.NewInvalidInputError("only one output format flag can be specified", nil)
	}
	if formatCount == 0 {
		return domain.ParseOutputFormat(configured)
	}
	return format, nil
}

// shouldOpenBrowser reports whether HTML output may be opened automatically
func shouldOpenBrowser(cfg *config.Config) bool {
	return !cfg.Output.NoOpen && service.IsInteractiveEnvironment()
}

// describeCount renders "1 report" / "3 reports"
func describeCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
