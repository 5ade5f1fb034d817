package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/ludo-technologies/xingstat/domain"
)

// ScaledChartRenderer is a chart renderer that knows its display scale
type ScaledChartRenderer interface {
	domain.ChartRenderer
	Scale() int
}

// ReportFormatterImpl implements the ReportFormatter interface
type ReportFormatterImpl struct {
	utils    *FormatUtils
	renderer ScaledChartRenderer
}

// NewReportFormatter creates a new report formatter. renderer may be nil,
// in which case HTML output omits the chart images.
func NewReportFormatter(utils *FormatUtils, renderer ScaledChartRenderer) *ReportFormatterImpl {
	if utils == nil {
		utils = NewFormatUtils(false)
	}
	return &ReportFormatterImpl{utils: utils, renderer: renderer}
}

// Format formats the response according to the specified format
func (f *ReportFormatterImpl) Format(response *domain.ReportResponse, format domain.OutputFormat) (string, error) {
	var b strings.Builder
	if err := f.Write(response, format, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write writes the formatted output to the writer
func (f *ReportFormatterImpl) Write(response *domain.ReportResponse, format domain.OutputFormat, writer io.Writer) error {
	if response == nil {
		return domain.NewInvalidInputError("response is nil", nil)
	}

	switch format {
	case domain.OutputFormatText, "":
		_, err := io.WriteString(writer, f.formatText(response))
		if err != nil {
			return domain.NewOutputError("failed to write text report", err)
		}
		return nil
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.writeCSV(response, writer)
	case domain.OutputFormatHTML:
		return f.writeHTML(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *ReportFormatterImpl) formatText(response *domain.ReportResponse) string {
	switch response.Kind {
	case domain.ReportKindListing:
		return f.formatListing(response)
	case domain.ReportKindWindowStats:
		return f.formatWindowStats(response)
	case domain.ReportKindYearOverYear:
		return f.formatYearOverYear(response)
	case domain.ReportKindChart:
		return f.formatChart(response)
	default:
		return ""
	}
}

func (f *ReportFormatterImpl) formatListing(response *domain.ReportResponse) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", f.utils.Heading(fmt.Sprintf(
		"The statistics for %s crossing the border each year are:", f.utils.Lower(response.Category))))
	b.WriteString(f.utils.Divider() + "\n")

	tbl := uitable.New()
	tbl.Separator = ": "
	for _, yc := range response.Listing {
		tbl.AddRow(strconv.Itoa(yc.Year), strconv.Itoa(yc.Count))
	}
	tbl.RightAlign(1)
	if len(response.Listing) > 0 {
		b.WriteString(tbl.String() + "\n")
	}

	b.WriteString(f.utils.Divider() + "\n")
	return b.String()
}

func (f *ReportFormatterImpl) formatWindowStats(response *domain.ReportResponse) string {
	stats := response.WindowStats
	if stats == nil {
		return ""
	}
	name := f.utils.Lower(response.Category)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(f.utils.Divider() + "\n")
	fmt.Fprintf(&b, "The mean number of %s crossing the border each year is %d\n", name, stats.Mean)
	fmt.Fprintf(&b, "In %d crossed the highest number of %s from the year %d to %d with %d %s\n",
		stats.MaxYear, name, stats.FromYear, stats.ToYear, stats.MaxValue, name)
	b.WriteString(f.utils.Divider() + "\n")
	return b.String()
}

func (f *ReportFormatterImpl) formatYearOverYear(response *domain.ReportResponse) string {
	yoy := response.YearOverYear
	if yoy == nil {
		return ""
	}
	name := f.utils.Lower(response.Category)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(f.utils.Divider() + "\n")
	fmt.Fprintf(&b, "The changes in %s crossing the border year on year are:\n", name)
	for _, c := range yoy.Changes {
		fmt.Fprintf(&b, "%s: %s of %s\n",
			f.utils.FormatYearRange(c.FromYear, c.ToYear),
			f.utils.FormatDirection(c.Direction),
			f.utils.FormatPercent(c.PercentChange))
	}

	if len(yoy.Flagged) > 0 {
		noun := "year"
		if len(yoy.Flagged) > 1 {
			noun = "years"
		}
		fmt.Fprintf(&b, "\nThe following %s have shown an increase of %s%% of %s crossing the border year on year:\n",
			noun, strconv.FormatFloat(yoy.ThresholdPercent, 'f', -1, 64), name)
		for _, p := range yoy.Flagged {
			b.WriteString(f.utils.Flag(f.utils.FormatYearRange(p.FromYear, p.ToYear)) + "\n")
		}
	}

	b.WriteString(f.utils.Divider() + "\n")
	return b.String()
}

func (f *ReportFormatterImpl) formatChart(response *domain.ReportResponse) string {
	series := response.Chart
	if series == nil || len(series.Years) == 0 {
		return ""
	}
	scale := f.scale()
	scaled := ScaleSeries(series.Secondary, scale)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(f.utils.Heading(RatioTitle(series)) + "\n")
	b.WriteString(f.utils.Heading(SecondaryTitle(series, scale)) + "\n")
	b.WriteString(f.utils.Divider() + "\n")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("year",
		fmt.Sprintf("%s per %s", lowerName(series.NumeratorName), SingularName(series.DenominatorName)),
		fmt.Sprintf("%s (x%d)", lowerName(series.SecondaryName), scale))
	for i, year := range series.Years {
		tbl.AddRow(strconv.Itoa(year),
			strconv.FormatFloat(series.Ratio[i], 'f', 2, 64),
			strconv.FormatFloat(scaled[i], 'f', 3, 64))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	b.WriteString(tbl.String() + "\n")

	b.WriteString(f.utils.Divider() + "\n")
	return b.String()
}

func (f *ReportFormatterImpl) scale() int {
	if f.renderer == nil {
		return 1
	}
	return f.renderer.Scale()
}

func (f *ReportFormatterImpl) writeCSV(response *domain.ReportResponse, writer io.Writer) error {
	w := csv.NewWriter(writer)
	var records [][]string

	switch response.Kind {
	case domain.ReportKindListing:
		records = append(records, []string{"category", "year", "count"})
		for _, yc := range response.Listing {
			records = append(records, []string{response.Category, strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)})
		}
	case domain.ReportKindWindowStats:
		records = append(records, []string{"category", "window_size", "from_year", "to_year", "mean", "exact_mean", "max_value", "max_year"})
		if s := response.WindowStats; s != nil {
			records = append(records, []string{
				response.Category,
				strconv.Itoa(s.WindowSize),
				strconv.Itoa(s.FromYear),
				strconv.Itoa(s.ToYear),
				strconv.Itoa(s.Mean),
				strconv.FormatFloat(s.ExactMean, 'f', 4, 64),
				strconv.Itoa(s.MaxValue),
				strconv.Itoa(s.MaxYear),
			})
		}
	case domain.ReportKindYearOverYear:
		records = append(records, []string{"category", "from_year", "to_year", "percent_change", "direction", "flagged"})
		if yoy := response.YearOverYear; yoy != nil {
			flagged := make(map[domain.YearPair]bool, len(yoy.Flagged))
			for _, p := range yoy.Flagged {
				flagged[p] = true
			}
			for _, c := range yoy.Changes {
				records = append(records, []string{
					response.Category,
					strconv.Itoa(c.FromYear),
					strconv.Itoa(c.ToYear),
					strconv.FormatFloat(c.PercentChange, 'f', 2, 64),
					string(c.Direction),
					strconv.FormatBool(flagged[domain.YearPair{FromYear: c.FromYear, ToYear: c.ToYear}]),
				})
			}
		}
	case domain.ReportKindChart:
		records = append(records, []string{"year", "ratio", "secondary"})
		if s := response.Chart; s != nil {
			for i, year := range s.Years {
				records = append(records, []string{
					strconv.Itoa(year),
					strconv.FormatFloat(s.Ratio[i], 'f', 4, 64),
					strconv.Itoa(s.Secondary[i]),
				})
			}
		}
	default:
		return domain.NewInvalidInputError(fmt.Sprintf("unknown report kind: %s", response.Kind), nil)
	}

	if err := w.WriteAll(records); err != nil {
		return domain.NewOutputError("failed to write CSV", err)
	}
	return nil
}
