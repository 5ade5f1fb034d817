package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/xingstat/domain"
)

func fixedService() *ReportServiceImpl {
	s := NewReportService()
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestReportService_Listing(t *testing.T) {
	table := borderTable(t)
	req := domain.DefaultReportRequest(domain.ReportKindListing)

	resp, err := fixedService().Generate(context.Background(), table, req)
	require.NoError(t, err)

	assert.Equal(t, "Buses", resp.Category)
	assert.Equal(t, 1, resp.CategoryIndex)
	assert.Equal(t, "2024-05-01T12:00:00Z", resp.GeneratedAt)
	require.Len(t, resp.Listing, 4)
	assert.Equal(t, domain.YearCount{Year: 2003, Count: 120}, resp.Listing[3])
}

func TestReportService_ListingFallsBackToSecondRow(t *testing.T) {
	table := borderTable(t)
	req := domain.DefaultReportRequest(domain.ReportKindListing)
	req.ListingCategory = "Ferries"

	resp, err := fixedService().Generate(context.Background(), table, req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CategoryIndex)

	single, err := domain.NewTable([]domain.Category{{Name: "Only", Values: []int{1, 2}}})
	require.NoError(t, err)
	resp, err = fixedService().Generate(context.Background(), single, req)
	require.NoError(t, err)
	assert.Equal(t, "Only", resp.Category)
}

func TestReportService_CategoryResolution(t *testing.T) {
	table := borderTable(t)

	tests := []struct {
		name     string
		category string
		index    int
		want     int
		wantErr  bool
	}{
		{name: "by code", category: "c", index: -1, want: 2},
		{name: "by name", category: "loaded trucks", index: -1, want: 3},
		{name: "index wins over name", category: "a", index: 1, want: 1},
		{name: "unknown name", category: "ferries", index: -1, wantErr: true},
		{name: "index out of range", index: 9, wantErr: true},
		{name: "missing category", index: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := domain.DefaultReportRequest(domain.ReportKindWindowStats)
			req.Category = tt.category
			req.CategoryIndex = tt.index

			resp, err := fixedService().Generate(context.Background(), table, req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput), err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.CategoryIndex)
			assert.NotNil(t, resp.WindowStats)
		})
	}
}

func TestReportService_WindowStats(t *testing.T) {
	req := domain.DefaultReportRequest(domain.ReportKindWindowStats)
	req.Category = "Buses"
	req.WindowSize = 3

	resp, err := fixedService().Generate(context.Background(), borderTable(t), req)
	require.NoError(t, err)
	require.NotNil(t, resp.WindowStats)
	assert.Equal(t, 96, resp.WindowStats.Mean)
	assert.Equal(t, 110, resp.WindowStats.MaxValue)
	assert.Equal(t, 2001, resp.WindowStats.MaxYear)
	assert.Equal(t, 2002, resp.WindowStats.ToYear)
}

func TestReportService_InvalidWindow(t *testing.T) {
	req := domain.DefaultReportRequest(domain.ReportKindWindowStats)
	req.Category = "A"
	req.WindowSize = 0

	_, err := fixedService().Generate(context.Background(), borderTable(t), req)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidWindow))
}

func TestReportService_YearOverYear(t *testing.T) {
	req := domain.DefaultReportRequest(domain.ReportKindYearOverYear)
	req.Category = "B"

	resp, err := fixedService().Generate(context.Background(), borderTable(t), req)
	require.NoError(t, err)
	require.NotNil(t, resp.YearOverYear)
	assert.Len(t, resp.YearOverYear.Changes, 3)
	assert.Equal(t, []domain.YearPair{{FromYear: 2000, ToYear: 2001}, {FromYear: 2002, ToYear: 2003}}, resp.YearOverYear.Flagged)
}

func TestReportService_Chart(t *testing.T) {
	req := domain.DefaultReportRequest(domain.ReportKindChart)

	resp, err := fixedService().Generate(context.Background(), borderTable(t), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Chart)
	assert.Equal(t, -1, resp.CategoryIndex)
	assert.Empty(t, resp.Category)
	assert.InDeltaSlice(t, []float64{30, 30, 30, 20}, resp.Chart.Ratio, 1e-9)
}

func TestReportService_Errors(t *testing.T) {
	svc := fixedService()

	_, err := svc.Generate(context.Background(), nil, domain.DefaultReportRequest(domain.ReportKindChart))
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	_, err = svc.Generate(context.Background(), borderTable(t), domain.DefaultReportRequest("histogram"))
	assert.True(t, domain.HasCode(err, domain.ErrCodeInvalidInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Generate(ctx, borderTable(t), domain.DefaultReportRequest(domain.ReportKindChart))
	assert.ErrorIs(t, err, context.Canceled)
}
