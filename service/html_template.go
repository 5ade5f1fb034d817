package service

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/ludo-technologies/xingstat/domain"
)

// htmlRow is one table row; Flag marks highlighted rows
type htmlRow struct {
	Cells []string
	Flag  bool
}

// htmlPage is the data passed to reportTemplate
type htmlPage struct {
	Title       string
	Subtitle    string
	GeneratedAt string
	Version     string
	Summary     []string
	Header      []string
	Rows        []htmlRow
	Panels      []template.HTML
	PanelTitles []string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            min-height: 100vh;
        }
        .container { max-width: 1200px; margin: 0 auto; padding: 20px; }
        .header, .content {
            background: white;
            border-radius: 10px;
            padding: 30px;
            margin-bottom: 20px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.1);
        }
        .header h1 { color: #667eea; margin-bottom: 10px; }
        .header p { color: #666; font-size: 14px; }
        .summary li { list-style: none; margin: 4px 0; }
        .panel { margin: 20px 0; }
        .panel h2 { font-size: 18px; color: #2c3e50; margin-bottom: 10px; }
        .table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        .table th { background: #667eea; color: white; padding: 12px; text-align: left; font-weight: 600; }
        .table td { padding: 12px; border-bottom: 1px solid #e9ecef; }
        .table tr.flag td { background: #fff3cd; color: #856404; font-weight: bold; }
        .footer { margin-top: 40px; padding: 20px; text-align: center; color: white; font-size: 14px; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{ .Title }}</h1>
        <p>{{ .Subtitle }}</p>
        <p>Generated: {{ .GeneratedAt }}</p>
    </div>
    <div class="content">
        {{- if .Summary }}
        <ul class="summary">
            {{- range .Summary }}
            <li>{{ . }}</li>
            {{- end }}
        </ul>
        {{- end }}
        {{- range $i, $panel := .Panels }}
        <div class="panel">
            <h2>{{ index $.PanelTitles $i }}</h2>
            {{ $panel }}
        </div>
        {{- end }}
        {{- if .Rows }}
        <table class="table">
            <thead><tr>{{ range .Header }}<th>{{ . }}</th>{{ end }}</tr></thead>
            <tbody>
            {{- range .Rows }}
                <tr{{ if .Flag }} class="flag"{{ end }}>{{ range .Cells }}<td>{{ . }}</td>{{ end }}</tr>
            {{- end }}
            </tbody>
        </table>
        {{- end }}
    </div>
    <div class="footer">xingstat {{ .Version }}</div>
</div>
</body>
</html>
`))

func (f *ReportFormatterImpl) writeHTML(response *domain.ReportResponse, writer io.Writer) error {
	page, err := f.buildPage(response)
	if err != nil {
		return err
	}
	if err := reportTemplate.Execute(writer, page); err != nil {
		return domain.NewOutputError("failed to render HTML report", err)
	}
	return nil
}

func (f *ReportFormatterImpl) buildPage(response *domain.ReportResponse) (*htmlPage, error) {
	page := &htmlPage{
		GeneratedAt: response.GeneratedAt,
		Version:     response.Version,
	}
	name := f.utils.Lower(response.Category)

	switch response.Kind {
	case domain.ReportKindListing:
		page.Title = "Yearly crossings"
		page.Subtitle = fmt.Sprintf("The statistics for %s crossing the border each year", name)
		page.Header = []string{"Year", "Count"}
		for _, yc := range response.Listing {
			page.Rows = append(page.Rows, htmlRow{Cells: []string{strconv.Itoa(yc.Year), strconv.Itoa(yc.Count)}})
		}

	case domain.ReportKindWindowStats:
		s := response.WindowStats
		if s == nil {
			return nil, domain.NewInvalidInputError("window statistics missing from response", nil)
		}
		page.Title = "Window statistics"
		page.Subtitle = fmt.Sprintf("%s from %d to %d", response.Category, s.FromYear, s.ToYear)
		page.Summary = []string{
			fmt.Sprintf("The mean number of %s crossing the border each year is %d", name, s.Mean),
			fmt.Sprintf("In %d crossed the highest number of %s from the year %d to %d with %d %s",
				s.MaxYear, name, s.FromYear, s.ToYear, s.MaxValue, name),
		}

	case domain.ReportKindYearOverYear:
		yoy := response.YearOverYear
		if yoy == nil {
			return nil, domain.NewInvalidInputError("year-over-year changes missing from response", nil)
		}
		page.Title = "Year on year changes"
		page.Subtitle = fmt.Sprintf("The changes in %s crossing the border year on year", name)
		page.Summary = []string{fmt.Sprintf("%d transition(s) above %s%%",
			len(yoy.Flagged), strconv.FormatFloat(yoy.ThresholdPercent, 'f', -1, 64))}
		page.Header = []string{"Years", "Direction", "Change"}
		flagged := make(map[domain.YearPair]bool, len(yoy.Flagged))
		for _, p := range yoy.Flagged {
			flagged[p] = true
		}
		for _, c := range yoy.Changes {
			page.Rows = append(page.Rows, htmlRow{
				Cells: []string{f.utils.FormatYearRange(c.FromYear, c.ToYear), string(c.Direction), fmt.Sprintf("%.2f%%", c.PercentChange)},
				Flag:  flagged[domain.YearPair{FromYear: c.FromYear, ToYear: c.ToYear}],
			})
		}

	case domain.ReportKindChart:
		s := response.Chart
		if s == nil || len(s.Years) == 0 {
			return nil, domain.NewInvalidInputError("chart series missing from response", nil)
		}
		scale := f.scale()
		page.Title = "Border crossing charts"
		page.Subtitle = fmt.Sprintf("%s, %s and %s", s.NumeratorName, s.DenominatorName, s.SecondaryName)
		page.PanelTitles = []string{RatioTitle(s), SecondaryTitle(s, scale)}
		if f.renderer != nil {
			ratio, secondary, err := f.renderer.RenderSVG(s)
			if err != nil {
				return nil, err
			}
			// Both documents come from the chart renderer, not from user input.
			page.Panels = []template.HTML{template.HTML(ratio), template.HTML(secondary)}
		}
		scaled := ScaleSeries(s.Secondary, scale)
		page.Header = []string{"Year", "Ratio", fmt.Sprintf("%s (x%d)", s.SecondaryName, scale)}
		for i, year := range s.Years {
			page.Rows = append(page.Rows, htmlRow{Cells: []string{
				strconv.Itoa(year),
				strconv.FormatFloat(s.Ratio[i], 'f', 2, 64),
				strconv.FormatFloat(scaled[i], 'f', 3, 64),
			}})
		}

	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown report kind: %s", response.Kind), nil)
	}

	return page, nil
}
