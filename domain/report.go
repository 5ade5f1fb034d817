package domain

import (
	"context"
	"io"
)

// Report defaults
const (
	// DefaultWindowSize is the number of leading years summarised by the window statistics report
	DefaultWindowSize = 8

	// DefaultThresholdPercent is the year-over-year increase above which a pair is flagged
	DefaultThresholdPercent = 5.0

	// DefaultListingCategory is the category shown by the yearly listing menu entry
	DefaultListingCategory = "buses"

	// Chart roles by table position
	DefaultChartNumerator   = 0
	DefaultChartDenominator = 1
	DefaultChartSecondary   = 2
)

// ReportKind identifies one of the canned reports
type ReportKind string

const (
	ReportKindListing      ReportKind = "listing"
	ReportKindWindowStats  ReportKind = "stats"
	ReportKindYearOverYear ReportKind = "yoy"
	ReportKindChart        ReportKind = "chart"
)

// AllReportKinds lists every report in menu order
func AllReportKinds() []ReportKind {
	return []ReportKind{ReportKindListing, ReportKindWindowStats, ReportKindYearOverYear, ReportKindChart}
}

// NeedsCategory reports whether the report is computed for a single category
func (k ReportKind) NeedsCategory() bool {
	return k != ReportKindChart
}

// Direction labels a year-over-year transition
type Direction string

const (
	DirectionIncrease Direction = "increase"
	// DirectionDecrease also covers an unchanged count.
	DirectionDecrease Direction = "decrease"
)

// YearCount is one entry of the yearly listing
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// WindowStats summarises the leading window of a series
type WindowStats struct {
	WindowSize int `json:"window_size" yaml:"window_size"`
	FromYear   int `json:"from_year" yaml:"from_year"`
	ToYear     int `json:"to_year" yaml:"to_year"`

	// Mean is sum/count truncated toward zero
	Mean      int     `json:"mean" yaml:"mean"`
	ExactMean float64 `json:"exact_mean" yaml:"exact_mean"`

	MaxValue int `json:"max_value" yaml:"max_value"`
	MaxYear  int `json:"max_year" yaml:"max_year"`
}

// YearChange is the percentage change between two consecutive years
type YearChange struct {
	FromYear      int       `json:"from_year" yaml:"from_year"`
	ToYear        int       `json:"to_year" yaml:"to_year"`
	PercentChange float64   `json:"percent_change" yaml:"percent_change"`
	Direction     Direction `json:"direction" yaml:"direction"`
}

// YearPair identifies a flagged transition
type YearPair struct {
	FromYear int `json:"from_year" yaml:"from_year"`
	ToYear   int `json:"to_year" yaml:"to_year"`
}

// YearOverYear holds every transition of a series and those above the threshold
type YearOverYear struct {
	ThresholdPercent float64      `json:"threshold_percent" yaml:"threshold_percent"`
	Changes          []YearChange `json:"changes" yaml:"changes"`
	Flagged          []YearPair   `json:"flagged" yaml:"flagged"`
}

// ChartSeries carries the assembled series for the two chart panels
type ChartSeries struct {
	Years []int `json:"years" yaml:"years"`

	NumeratorName   string    `json:"numerator" yaml:"numerator"`
	DenominatorName string    `json:"denominator" yaml:"denominator"`
	Ratio           []float64 `json:"ratio" yaml:"ratio"`

	SecondaryName string `json:"secondary_name" yaml:"secondary_name"`
	Secondary     []int  `json:"secondary" yaml:"secondary"`
}

// ChartRoles selects the table positions feeding the chart
type ChartRoles struct {
	Numerator   int
	Denominator int
	Secondary   int
}

// DefaultChartRoles returns the conventional positions 0, 1 and 2
func DefaultChartRoles() ChartRoles {
	return ChartRoles{
		Numerator:   DefaultChartNumerator,
		Denominator: DefaultChartDenominator,
		Secondary:   DefaultChartSecondary,
	}
}

// ReportRequest represents a request for one report
type ReportRequest struct {
	Kind ReportKind

	// Category is a display name or selection code; empty means the
	// listing default for ReportKindListing.
	Category string

	// CategoryIndex, when >= 0, takes precedence over Category
	CategoryIndex int

	WindowSize       int
	ThresholdPercent float64
	ListingCategory  string
	ChartRoles       ChartRoles

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
}

// DefaultReportRequest returns a ReportRequest with default values
func DefaultReportRequest(kind ReportKind) ReportRequest {
	return ReportRequest{
		Kind:             kind,
		CategoryIndex:    -1,
		WindowSize:       DefaultWindowSize,
		ThresholdPercent: DefaultThresholdPercent,
		ListingCategory:  DefaultListingCategory,
		ChartRoles:       DefaultChartRoles(),
		OutputFormat:     OutputFormatText,
	}
}

// ReportResponse is the result of one report. Exactly one of the payload
// fields is set, matching Kind.
type ReportResponse struct {
	Kind          ReportKind `json:"kind" yaml:"kind"`
	Category      string     `json:"category,omitempty" yaml:"category,omitempty"`
	CategoryIndex int        `json:"category_index" yaml:"category_index"`

	Listing      []YearCount   `json:"listing,omitempty" yaml:"listing,omitempty"`
	WindowStats  *WindowStats  `json:"window_stats,omitempty" yaml:"window_stats,omitempty"`
	YearOverYear *YearOverYear `json:"year_over_year,omitempty" yaml:"year_over_year,omitempty"`
	Chart        *ChartSeries  `json:"chart,omitempty" yaml:"chart,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// TableLoader loads the dataset into a Table
type TableLoader interface {
	// Load resolves path (a file or glob pattern) and parses it
	Load(ctx context.Context, path string) (*Table, error)
}

// ReportService computes reports from a loaded table
type ReportService interface {
	// Generate computes the report described by req
	Generate(ctx context.Context, table *Table, req ReportRequest) (*ReportResponse, error)
}

// ReportFormatter formats report responses
type ReportFormatter interface {
	// Format formats the response according to the specified format
	Format(response *ReportResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *ReportResponse, format OutputFormat, writer io.Writer) error
}

// ChartRenderer turns chart series into images
type ChartRenderer interface {
	// RenderSVG renders both panels as SVG documents
	RenderSVG(series *ChartSeries) (ratio []byte, secondary []byte, err error)

	// RenderPNG renders both panels as PNG images
	RenderPNG(series *ChartSeries) (ratio []byte, secondary []byte, err error)
}

// Console is the line-oriented terminal the interactive session talks to
type Console interface {
	// ReadLine prints prompt and returns the next line without its terminator.
	// It returns io.EOF when input is exhausted.
	ReadLine(prompt string) (string, error)

	// Writer returns the destination for menus and reports
	Writer() io.Writer
}
