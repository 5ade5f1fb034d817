package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/xingstat/domain"
)

func generate(t *testing.T, kind domain.ReportKind, category string) *domain.ReportResponse {
	t.Helper()
	req := domain.DefaultReportRequest(kind)
	req.Category = category
	req.WindowSize = 3
	resp, err := fixedService().Generate(context.Background(), borderTable(t), req)
	require.NoError(t, err)
	return resp
}

func TestReportFormatter_ListingText(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), nil)
	out, err := f.Format(generate(t, domain.ReportKindListing, ""), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "The statistics for buses crossing the border each year are:")
	assert.Contains(t, out, "2000: 100")
	assert.Contains(t, out, "2003: 120")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", DividerWidth)))
	assert.True(t, strings.HasPrefix(out, "\n"))
	assert.NotContains(t, out, "\x1b[", "colors must be off")
}

func TestReportFormatter_WindowStatsText(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), nil)
	out, err := f.Format(generate(t, domain.ReportKindWindowStats, "Buses"), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "The mean number of buses crossing the border each year is 96\n")
	assert.Contains(t, out, "In 2001 crossed the highest number of buses from the year 2000 to 2002 with 110 buses\n")
}

func TestReportFormatter_YearOverYearText(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), nil)
	out, err := f.Format(generate(t, domain.ReportKindYearOverYear, "Buses"), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "The changes in buses crossing the border year on year are:")
	assert.Contains(t, out, "2000-2001: increase of 10.00%\n")
	assert.Contains(t, out, "2001-2002: decrease of -27.27%\n")
	assert.Contains(t, out, "2002-2003: increase of 50.00%\n")
	assert.Contains(t, out, "The following years have shown an increase of 5% of buses crossing the border year on year:")
}

func TestReportFormatter_YearOverYearNothingFlagged(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), nil)
	resp := &domain.ReportResponse{
		Kind:     domain.ReportKindYearOverYear,
		Category: "Buses",
		YearOverYear: &domain.YearOverYear{
			ThresholdPercent: 5,
			Changes:          []domain.YearChange{{FromYear: 2000, ToYear: 2001, PercentChange: 1, Direction: domain.DirectionIncrease}},
		},
	}
	out, err := f.Format(resp, domain.OutputFormatText)
	require.NoError(t, err)
	assert.NotContains(t, out, "The following")
}

func TestReportFormatter_SingleFlaggedYear(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), nil)
	resp := &domain.ReportResponse{
		Kind:     domain.ReportKindYearOverYear,
		Category: "Buses",
		YearOverYear: &domain.YearOverYear{
			ThresholdPercent: 7.5,
			Changes:          []domain.YearChange{{FromYear: 2000, ToYear: 2001, PercentChange: 10, Direction: domain.DirectionIncrease}},
			Flagged:          []domain.YearPair{{FromYear: 2000, ToYear: 2001}},
		},
	}
	out, err := f.Format(resp, domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "The following year have shown an increase of 7.5% of buses")
}

func TestReportFormatter_ChartText(t *testing.T) {
	f := NewReportFormatter(NewFormatUtils(false), NewChartRenderer(1000))
	out, err := f.Format(generate(t, domain.ReportKindChart, ""), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Traffic data of bus passengers per bus from 2000 to 2003")
	assert.Contains(t, out, "Traffic data of every 1,000 personal vehicles from 2000 to 2003")
	assert.Contains(t, out, "125.000")
	assert.Contains(t, out, "30.00")
}

func TestReportFormatter_JSON(t *testing.T) {
	f := NewReportFormatter(nil, nil)
	out, err := f.Format(generate(t, domain.ReportKindWindowStats, "Buses"), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded domain.ReportResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, domain.ReportKindWindowStats, decoded.Kind)
	require.NotNil(t, decoded.WindowStats)
	assert.Equal(t, 96, decoded.WindowStats.Mean)
	assert.Nil(t, decoded.YearOverYear)
}

func TestReportFormatter_YAML(t *testing.T) {
	f := NewReportFormatter(nil, nil)
	out, err := f.Format(generate(t, domain.ReportKindListing, ""), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "listing", decoded["kind"])
	assert.Equal(t, "Buses", decoded["category"])
}

func TestReportFormatter_CSV(t *testing.T) {
	f := NewReportFormatter(nil, nil)

	tests := []struct {
		kind     domain.ReportKind
		category string
		header   []string
		rows     int
	}{
		{domain.ReportKindListing, "", []string{"category", "year", "count"}, 4},
		{domain.ReportKindWindowStats, "Buses", []string{"category", "window_size", "from_year", "to_year", "mean", "exact_mean", "max_value", "max_year"}, 1},
		{domain.ReportKindYearOverYear, "Buses", []string{"category", "from_year", "to_year", "percent_change", "direction", "flagged"}, 3},
		{domain.ReportKindChart, "", []string{"year", "ratio", "secondary"}, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, f.Write(generate(t, tt.kind, tt.category), domain.OutputFormatCSV, &buf))

			records, err := csv.NewReader(&buf).ReadAll()
			require.NoError(t, err)
			require.Len(t, records, tt.rows+1)
			assert.Equal(t, tt.header, records[0])
		})
	}
}

func TestReportFormatter_CSVFlaggedColumn(t *testing.T) {
	f := NewReportFormatter(nil, nil)
	var buf bytes.Buffer
	require.NoError(t, f.Write(generate(t, domain.ReportKindYearOverYear, "Buses"), domain.OutputFormatCSV, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Buses", "2000", "2001", "10.00", "increase", "true"}, records[1])
	assert.Equal(t, []string{"Buses", "2001", "2002", "-27.27", "decrease", "false"}, records[2])
}

func TestReportFormatter_HTML(t *testing.T) {
	f := NewReportFormatter(nil, NewChartRenderer(1000))

	out, err := f.Format(generate(t, domain.ReportKindChart, ""), domain.OutputFormatHTML)
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Equal(t, 2, strings.Count(out, "<svg"), "both chart panels are embedded")
	assert.Contains(t, out, "Traffic data of bus passengers per bus")

	out, err = f.Format(generate(t, domain.ReportKindYearOverYear, "Buses"), domain.OutputFormatHTML)
	require.NoError(t, err)
	assert.Contains(t, out, `<tr class="flag">`)
	assert.NotContains(t, out, "<svg")
}

func TestReportFormatter_Errors(t *testing.T) {
	f := NewReportFormatter(nil, nil)

	_, err := f.Format(nil, domain.OutputFormatText)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = f.Format(generate(t, domain.ReportKindListing, ""), "xml")
	assert.True(t, domain.HasCode(err, domain.ErrCodeUnsupportedFormat))
}

func TestFormatUtils_TitledRule(t *testing.T) {
	u := NewFormatUtils(false)

	rule := u.TitledRule("Border Crossing Vehicles 2")
	assert.Len(t, rule, DividerWidth)
	assert.True(t, strings.HasPrefix(rule, strings.Repeat("-", 45)+" Border"))
	assert.True(t, strings.HasSuffix(rule, "2 "+strings.Repeat("-", 46)))

	rule = u.TitledRule("List of available option inputs")
	assert.True(t, strings.HasPrefix(rule, strings.Repeat("-", 43)+" List"))
	assert.True(t, strings.HasSuffix(rule, "inputs "+strings.Repeat("-", 43)))
}
