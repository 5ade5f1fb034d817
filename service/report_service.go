package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/engine"
	"github.com/ludo-technologies/xingstat/internal/selection"
	"github.com/ludo-technologies/xingstat/internal/version"
)

// ReportServiceImpl implements domain.ReportService on top of the report engine
type ReportServiceImpl struct {
	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService() *ReportServiceImpl {
	return &ReportServiceImpl{now: time.Now}
}

// Generate computes the report described by req
func (s *ReportServiceImpl) Generate(ctx context.Context, table *domain.Table, req domain.ReportRequest) (*domain.ReportResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, domain.NewInvalidInputError("no data loaded", nil)
	}

	response := &domain.ReportResponse{
		Kind:          req.Kind,
		CategoryIndex: -1,
		GeneratedAt:   s.now().Format(time.RFC3339),
		Version:       version.Short(),
	}

	if req.Kind.NeedsCategory() {
		index, err := s.resolveCategory(table, req)
		if err != nil {
			return nil, err
		}
		response.CategoryIndex = index
		response.Category = table.Name(index)
	}

	switch req.Kind {
	case domain.ReportKindListing:
		response.Listing = engine.YearlyListing(table, response.CategoryIndex)

	case domain.ReportKindWindowStats:
		stats, err := engine.WindowStats(table, response.CategoryIndex, req.WindowSize)
		if err != nil {
			return nil, err
		}
		response.WindowStats = stats

	case domain.ReportKindYearOverYear:
		yoy, err := engine.YearOverYear(table, response.CategoryIndex, req.ThresholdPercent)
		if err != nil {
			return nil, err
		}
		response.YearOverYear = yoy

	case domain.ReportKindChart:
		series, err := engine.ChartSeries(table, req.ChartRoles)
		if err != nil {
			return nil, err
		}
		response.Chart = series

	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown report kind: %q", req.Kind), nil)
	}

	return response, nil
}

func (s *ReportServiceImpl) resolveCategory(table *domain.Table, req domain.ReportRequest) (int, error) {
	if req.CategoryIndex >= 0 {
		if !table.Valid(req.CategoryIndex) {
			return -1, domain.NewInvalidInputError(
				fmt.Sprintf("category index %d out of range, table has %d categories", req.CategoryIndex, table.Len()), nil)
		}
		return req.CategoryIndex, nil
	}

	if req.Category != "" {
		return ResolveCategory(table, req.Category)
	}

	if req.Kind == domain.ReportKindListing {
		return ResolveListingIndex(table, req.ListingCategory), nil
	}

	return -1, domain.NewInvalidInputError(fmt.Sprintf("the %s report needs a category", req.Kind), nil)
}

// ResolveCategory finds a category by display name or selection code
func ResolveCategory(table *domain.Table, nameOrCode string) (int, error) {
	choice := selection.ResolveCategoryChoice(table, nameOrCode)
	if choice.Kind != domain.ChoiceCategory {
		return -1, domain.NewInvalidInputError(fmt.Sprintf("unknown category: %q", nameOrCode), nil)
	}
	return choice.Index, nil
}

// ResolveListingIndex picks the category for the yearly listing. When name is
// absent from the table the second row is used, or the first for one-row tables.
func ResolveListingIndex(table *domain.Table, name string) int {
	if idx := table.IndexOf(name); idx >= 0 {
		return idx
	}
	if table.Len() >= 2 {
		return 1
	}
	return 0
}
