package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ludo-technologies/xingstat/app"
	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

const datasetPath = "../testdata/brdrxingusc_dataset.csv"

func newReportUseCase(t *testing.T, sheet string) *app.ReportUseCase {
	t.Helper()
	uc, err := app.NewReportUseCaseBuilder().
		WithLoader(service.NewTableLoader(sheet)).
		WithService(service.NewReportService()).
		WithFormatter(service.NewReportFormatter(service.NewFormatUtils(false), service.NewChartRenderer(1000))).
		WithOutputWriter(service.NewFileOutputWriter(&bytes.Buffer{})).
		Build()
	require.NoError(t, err)
	return uc
}

// TestReportsOverBundledDataset runs every report kind through the real stack
func TestReportsOverBundledDataset(t *testing.T) {
	uc := newReportUseCase(t, "")

	for _, kind := range domain.AllReportKinds() {
		t.Run(string(kind), func(t *testing.T) {
			var out bytes.Buffer
			req := domain.DefaultReportRequest(kind)
			req.OutputFormat = domain.OutputFormatJSON
			req.OutputWriter = &out
			if kind == domain.ReportKindWindowStats || kind == domain.ReportKindYearOverYear {
				req.Category = "Personal Vehicles"
			}

			require.NoError(t, uc.Execute(context.Background(), datasetPath, req))

			var response domain.ReportResponse
			require.NoError(t, json.Unmarshal(out.Bytes(), &response))
			assert.Equal(t, kind, response.Kind)
		})
	}
}

// TestPersonalVehiclesNeverFlagged checks a steadily shrinking series
func TestPersonalVehiclesNeverFlagged(t *testing.T) {
	uc := newReportUseCase(t, "")

	var out bytes.Buffer
	req := domain.DefaultReportRequest(domain.ReportKindYearOverYear)
	req.Category = "C"
	req.OutputWriter = &out

	require.NoError(t, uc.Execute(context.Background(), datasetPath, req))
	assert.Contains(t, out.String(), "The changes in personal vehicles crossing the border year on year are:")
	assert.NotContains(t, out.String(), "The following")
}

// TestWorkbookMatchesCSV loads the same table from an .xlsx sheet
func TestWorkbookMatchesCSV(t *testing.T) {
	csvTable, err := service.NewTableLoader("").Load(context.Background(), datasetPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(datasetPath)
	require.NoError(t, err)

	f := excelize.NewFile()
	defer f.Close()
	_, err = f.NewSheet("Crossings")
	require.NoError(t, err)
	for r, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		for c, cell := range strings.Split(strings.TrimSpace(line), ",") {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Crossings", name, cell))
		}
	}
	path := filepath.Join(t.TempDir(), "crossings.xlsx")
	require.NoError(t, f.SaveAs(path))

	xlsxTable, err := service.NewTableLoader("Crossings").Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, csvTable.Len(), xlsxTable.Len())
	for i := 0; i < csvTable.Len(); i++ {
		assert.Equal(t, csvTable.Name(i), xlsxTable.Name(i))
		assert.Equal(t, csvTable.Values(i), xlsxTable.Values(i))
	}
}

// TestExportOverBundledDataset writes the full export and reads one file back
func TestExportOverBundledDataset(t *testing.T) {
	dir := t.TempDir()
	uc, err := app.NewExportUseCaseBuilder().
		WithLoader(service.NewTableLoader("")).
		WithService(service.NewReportService()).
		WithFormatter(service.NewReportFormatter(service.NewFormatUtils(false), service.NewChartRenderer(1000))).
		WithExecutor(service.NewParallelExecutor()).
		Build()
	require.NoError(t, err)

	req := domain.ExportRequest{
		DataPath:         datasetPath,
		Format:           domain.OutputFormatYAML,
		Directory:        dir,
		WindowSize:       domain.DefaultWindowSize,
		ThresholdPercent: domain.DefaultThresholdPercent,
		ListingCategory:  domain.DefaultListingCategory,
		ChartRoles:       domain.DefaultChartRoles(),
		Concurrency:      3,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := uc.Execute(ctx, req)
	require.NoError(t, err)
	assert.Len(t, response.Files, 13)

	data, err := os.ReadFile(filepath.Join(dir, "stats_b_buses.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "mean: 126801")
}

// TestCancelledContext stops before touching the dataset
func TestCancelledContext(t *testing.T) {
	uc := newReportUseCase(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := domain.DefaultReportRequest(domain.ReportKindListing)
	req.OutputWriter = &bytes.Buffer{}
	err := uc.Execute(ctx, datasetPath, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
