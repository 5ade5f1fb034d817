package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/xingstat/internal/config"
)

// newFlagTracker records which flags were explicitly set on cmd. Cobra merges
// the inherited persistent flags into cmd.Flags() before RunE, so they are
// seen too.
func newFlagTracker(cmd *cobra.Command) *config.FlagTracker {
	if cmd == nil {
		return config.NewFlagTracker()
	}
	return config.NewFlagTrackerFromFlagSet(cmd.Flags())
}
