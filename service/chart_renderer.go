package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/ludo-technologies/xingstat/domain"
)

// Panel dimensions in pixels
const (
	ChartWidth  = 960
	ChartHeight = 360
)

// ChartRendererImpl draws the two chart panels with go-chart
type ChartRendererImpl struct {
	// scale divides the secondary series for display
	scale int
}

// NewChartRenderer creates a renderer. A scale below 1 is treated as 1.
func NewChartRenderer(secondaryScale int) *ChartRendererImpl {
	if secondaryScale < 1 {
		secondaryScale = 1
	}
	return &ChartRendererImpl{scale: secondaryScale}
}

// Scale returns the divisor applied to the secondary series
func (r *ChartRendererImpl) Scale() int {
	return r.scale
}

// RenderSVG renders both panels as SVG documents
func (r *ChartRendererImpl) RenderSVG(series *domain.ChartSeries) ([]byte, []byte, error) {
	return r.render(series, chart.SVG)
}

// RenderPNG renders both panels as PNG images
func (r *ChartRendererImpl) RenderPNG(series *domain.ChartSeries) ([]byte, []byte, error) {
	return r.render(series, chart.PNG)
}

func (r *ChartRendererImpl) render(series *domain.ChartSeries, provider chart.RendererProvider) ([]byte, []byte, error) {
	if series == nil || len(series.Years) == 0 {
		return nil, nil, domain.NewInvalidInputError("chart series is empty", nil)
	}

	var ratio bytes.Buffer
	if err := r.ratioChart(series).Render(provider, &ratio); err != nil {
		return nil, nil, domain.NewOutputError("failed to render ratio chart", err)
	}

	var secondary bytes.Buffer
	if err := r.secondaryChart(series).Render(provider, &secondary); err != nil {
		return nil, nil, domain.NewOutputError("failed to render secondary chart", err)
	}

	return ratio.Bytes(), secondary.Bytes(), nil
}

// RatioTitle is the heading of the first panel
func RatioTitle(series *domain.ChartSeries) string {
	return fmt.Sprintf("Traffic data of %s per %s from %d to %d",
		lowerName(series.NumeratorName), SingularName(series.DenominatorName),
		series.Years[0], series.Years[len(series.Years)-1])
}

// SecondaryTitle is the heading of the second panel
func SecondaryTitle(series *domain.ChartSeries, scale int) string {
	return fmt.Sprintf("Traffic data of every %s %s from %d to %d",
		humanize.Comma(int64(scale)), lowerName(series.SecondaryName),
		series.Years[0], series.Years[len(series.Years)-1])
}

// ScaleSeries divides every value by scale for display
func ScaleSeries(values []int, scale int) []float64 {
	if scale < 1 {
		scale = 1
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v) / float64(scale)
	}
	return out
}

func (r *ChartRendererImpl) ratioChart(series *domain.ChartSeries) chart.Chart {
	xs := make([]float64, len(series.Years))
	for i, y := range series.Years {
		xs[i] = float64(y)
	}

	name := fmt.Sprintf("%s per %s", series.NumeratorName, SingularName(series.DenominatorName))
	graph := chart.Chart{
		Title:      RatioTitle(series),
		Width:      ChartWidth,
		Height:     ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "year",
			Range: &chart.ContinuousRange{Min: xs[0] - 0.5, Max: xs[len(xs)-1] + 0.5},
			Ticks: yearTicks(series.Years),
		},
		YAxis: chart.YAxis{
			Name:           name,
			Range:          &chart.ContinuousRange{Min: 0, Max: upperBound(series.Ratio)},
			ValueFormatter: func(v interface{}) string { return formatAxisValue(v, 1) },
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    name,
				XValues: xs,
				YValues: series.Ratio,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

func (r *ChartRendererImpl) secondaryChart(series *domain.ChartSeries) chart.BarChart {
	scaled := ScaleSeries(series.Secondary, r.scale)
	bars := make([]chart.Value, len(scaled))
	for i, v := range scaled {
		bars[i] = chart.Value{Value: v, Label: strconv.Itoa(series.Years[i])}
	}

	return chart.BarChart{
		Title:      SecondaryTitle(series, r.scale),
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   barWidth(len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:           fmt.Sprintf("%s (x%s)", series.SecondaryName, humanize.Comma(int64(r.scale))),
			Range:          &chart.ContinuousRange{Min: 0, Max: upperBound(scaled)},
			ValueFormatter: func(v interface{}) string { return formatAxisValue(v, 0) },
		},
		Bars: bars,
	}
}

func yearTicks(years []int) []chart.Tick {
	ticks := make([]chart.Tick, len(years))
	for i, y := range years {
		ticks[i] = chart.Tick{Value: float64(y), Label: strconv.Itoa(y)}
	}
	return ticks
}

// upperBound leaves headroom above the largest value and never returns zero
func upperBound(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func barWidth(n int) int {
	if n <= 0 {
		return 40
	}
	w := (ChartWidth - 120) / n * 2 / 3
	if w < 8 {
		return 8
	}
	if w > 60 {
		return 60
	}
	return w
}

func formatAxisValue(v interface{}, decimals int) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	if decimals == 0 {
		return humanize.Comma(int64(f))
	}
	return humanize.CommafWithDigits(f, decimals)
}

func lowerName(name string) string {
	return strings.ToLower(name)
}

// SingularName drops a plural "s" so "Buses" reads as "bus" in "passengers per bus"
func SingularName(name string) string {
	n := lowerName(name)
	switch {
	case len(n) > 3 && n[len(n)-3:] == "ses":
		return n[:len(n)-2]
	case len(n) > 1 && n[len(n)-1] == 's' && n[len(n)-2] != 's':
		return n[:len(n)-1]
	default:
		return n
	}
}
