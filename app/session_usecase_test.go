package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

type sessionHarness struct {
	out      *bytes.Buffer
	status   *bytes.Buffer
	opened   []string
	chartDir string
}

func runSession(t *testing.T, table *domain.Table, input string, configure func(*SessionOptions)) (*sessionHarness, error) {
	t.Helper()
	h := &sessionHarness{out: &bytes.Buffer{}, status: &bytes.Buffer{}, chartDir: t.TempDir()}

	opts := DefaultSessionOptions()
	opts.Pause = false
	opts.ChartDirectory = h.chartDir
	if configure != nil {
		configure(&opts)
	}

	writer := service.NewFileOutputWriter(h.status).WithBrowserOpener(func(url string) error {
		h.opened = append(h.opened, url)
		return nil
	})

	uc, err := NewSessionUseCaseBuilder().
		WithTable(table).
		WithConsole(service.NewConsole(strings.NewReader(input), h.out)).
		WithService(service.NewReportService()).
		WithFormatter(service.NewReportFormatter(service.NewFormatUtils(false), service.NewChartRenderer(1000))).
		WithOutputWriter(writer).
		WithOptions(opts).
		WithClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }).
		Build()
	require.NoError(t, err)

	return h, uc.Run(context.Background())
}

func TestSession_MenuAndQuit(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "quit\n", nil)
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, strings.Repeat("-", 45)+" Border Crossing Vehicles 2 "+strings.Repeat("-", 46))
	assert.Contains(t, out, "A: Display the number of Buses crossing the border for each year, for the 4-year period\n")
	assert.Contains(t, out, "B: Display user-selected input's mean number of vehicles from 2000 to 2003 and the maximum traffic in the 4 years\n")
	assert.Contains(t, out, "C: Display user-selected input's year on year growth and list down years that have an increase of >5%\n")
	assert.Contains(t, out, "D: Show a graph of bus passengers per bus vs year and number of personal vehicles vs year\n")
	assert.Contains(t, out, "Select an option above to view the data, or type 'Q' or 'Quit' to exit the program\n")
	assert.Contains(t, out, SelectionPrompt)
	assert.True(t, strings.HasSuffix(out, ExitMessage+"\n"))
}

func TestSession_ListingThenQuit(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "a\nq\n", nil)
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "The statistics for buses crossing the border each year are:")
	assert.Contains(t, out, "2001: 110")
	assert.Equal(t, 2, strings.Count(out, "Border Crossing Vehicles 2"), "menu is shown again after a report")
}

func TestSession_InvalidInputReprompts(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "x\nquitter\nQUIT\n", nil)
	require.NoError(t, err)

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, InvalidSelection))
	assert.Equal(t, 1, strings.Count(out, "Border Crossing Vehicles 2"), "invalid input does not redraw the menu")
	assert.Equal(t, 3, strings.Count(out, SelectionPrompt))
}

func TestSession_WindowStatsWithCategory(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "B\nz\nbuses\nquit\n", func(o *SessionOptions) {
		o.WindowSize = 3
	})
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, strings.Repeat("-", 43)+" List of available option inputs "+strings.Repeat("-", 43))
	assert.Contains(t, out, "A: Bus Passengers\nB: Buses\nC: Personal Vehicles\nD: Loaded Trucks\n")
	assert.Equal(t, 1, strings.Count(out, InvalidSelection))
	assert.Contains(t, out, "The mean number of buses crossing the border each year is 96")
}

func TestSession_YearOverYearByCode(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "3\nb\nq\n", nil)
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "2000-2001: increase of 10.00%")
	assert.Contains(t, out, "The following years have shown an increase of 5% of buses")
}

func TestSession_BackReturnsToMenu(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "c\n\nq\n", func(o *SessionOptions) { o.Pause = true })
	require.NoError(t, err)

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "Border Crossing Vehicles 2"))
	assert.NotContains(t, out, "year on year are:")
	assert.NotContains(t, out, PausePrompt, "cancelling does not pause")
}

func TestSession_PauseAfterReport(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "a\n\nq\n", func(o *SessionOptions) { o.Pause = true })
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "\n"+PausePrompt)
	assert.True(t, strings.HasSuffix(out, ExitMessage+"\n"))
}

func TestSession_EOFIsQuit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pause bool
	}{
		{"at menu", "", false},
		{"at category prompt", "b\n", false},
		{"at pause", "a\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := runSession(t, sampleTable(t), tt.input, func(o *SessionOptions) { o.Pause = tt.pause })
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(h.out.String(), "\n"+ExitMessage+"\n"))
		})
	}
}

func TestSession_ChartWritesHTML(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "d\nq\n", nil)
	require.NoError(t, err)

	assert.Contains(t, h.out.String(), "Traffic data of bus passengers per bus from 2000 to 2003")

	path := filepath.Join(h.chartDir, "chart_20240102_030405.html")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	require.Len(t, h.opened, 1)
	assert.True(t, strings.HasSuffix(h.opened[0], "chart_20240102_030405.html"))
}

func TestSession_ChartNoOpen(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "d\nq\n", func(o *SessionOptions) { o.NoOpen = true })
	require.NoError(t, err)
	assert.Empty(t, h.opened)
	assert.Contains(t, h.status.String(), "HTML report generated:")
}

func TestSession_EngineErrorKeepsLoopAlive(t *testing.T) {
	table, err := domain.NewTable([]domain.Category{
		{Name: "Bus Passengers", Values: []int{300, 440}},
		{Name: "Buses", Values: []int{0, 11}},
		{Name: "Personal Vehicles", Values: []int{125000, 130000}},
	})
	require.NoError(t, err)

	h, err := runSession(t, table, "c\nB\nd\na\nq\n", nil)
	require.NoError(t, err)

	out := h.out.String()
	assert.Equal(t, 2, strings.Count(out, "Error: [DIVISION_UNDEFINED]"))
	assert.Contains(t, out, "The statistics for buses crossing the border each year are:")
	assert.True(t, strings.HasSuffix(out, ExitMessage+"\n"))
}

func TestSession_ListingCategoryOption(t *testing.T) {
	h, err := runSession(t, sampleTable(t), "a\nq\n", func(o *SessionOptions) { o.ListingCategory = "loaded trucks" })
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "A: Display the number of Loaded Trucks crossing the border")
	assert.Contains(t, out, "The statistics for loaded trucks crossing the border each year are:")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestSession_ReadErrorStopsLoop(t *testing.T) {
	uc, err := NewSessionUseCaseBuilder().
		WithTable(sampleTable(t)).
		WithConsole(service.NewConsole(failingReader{}, io.Discard)).
		WithService(service.NewReportService()).
		WithFormatter(service.NewReportFormatter(nil, nil)).
		Build()
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Run(context.Background()), io.ErrClosedPipe)
}

func TestSessionUseCaseBuilder_Requirements(t *testing.T) {
	_, err := NewSessionUseCaseBuilder().Build()
	assert.Error(t, err)

	_, err = NewSessionUseCaseBuilder().WithTable(sampleTable(t)).Build()
	assert.Error(t, err)
}
