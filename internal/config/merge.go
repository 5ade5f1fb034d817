package config

// Flag names shared by the CLI and the merge below
const (
	FlagData            = "data"
	FlagSheet           = "sheet"
	FlagWindow          = "window"
	FlagThreshold       = "threshold"
	FlagListingCategory = "listing-category"
	FlagOutputDir       = "output-dir"
	FlagNoOpen          = "no-open"
	FlagNoColor         = "no-color"
	FlagNoPause         = "no-pause"
	FlagLogLevel        = "log-level"
	FlagLogFormat       = "log-format"
)

// Overrides carries command line values that may replace configured ones
type Overrides struct {
	DataPath         string
	Sheet            string
	WindowSize       int
	ThresholdPercent float64
	ListingCategory  string
	OutputDirectory  string
	NoOpen           bool
	NoColor          bool
	NoPause          bool
	LogLevel         string
	LogFormat        string
}

// ApplyOverrides merges o into the configuration, taking a value only when
// its flag was explicitly set, and revalidates the result.
func (c *Config) ApplyOverrides(o Overrides, ft *FlagTracker) error {
	c.Data.Path = ft.MergeString(c.Data.Path, o.DataPath, FlagData)
	c.Data.Sheet = ft.MergeString(c.Data.Sheet, o.Sheet, FlagSheet)

	c.Report.WindowSize = ft.MergeInt(c.Report.WindowSize, o.WindowSize, FlagWindow)
	c.Report.ThresholdPercent = ft.MergeFloat64(c.Report.ThresholdPercent, o.ThresholdPercent, FlagThreshold)
	c.Report.ListingCategory = ft.MergeString(c.Report.ListingCategory, o.ListingCategory, FlagListingCategory)

	c.Output.Directory = ft.MergeString(c.Output.Directory, o.OutputDirectory, FlagOutputDir)
	c.Output.NoOpen = ft.MergeBool(c.Output.NoOpen, o.NoOpen, FlagNoOpen)
	c.Output.NoColor = ft.MergeBool(c.Output.NoColor, o.NoColor, FlagNoColor)
	c.Output.NoPause = ft.MergeBool(c.Output.NoPause, o.NoPause, FlagNoPause)

	c.Logging.Level = ft.MergeString(c.Logging.Level, o.LogLevel, FlagLogLevel)
	c.Logging.Format = ft.MergeString(c.Logging.Format, o.LogFormat, FlagLogFormat)

	return c.Validate()
}
