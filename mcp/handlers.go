package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/logging"
	"github.com/ludo-technologies/xingstat/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil)
	}
	return &HandlerSet{deps: deps}
}

// HandleListCategories handles the list_categories tool
func (h *HandlerSet) HandleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	dataPath, err := optionalString(args, "data_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := h.deps.LoadTable(ctx, dataPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	categories := make([]map[string]interface{}, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		categories = append(categories, map[string]interface{}{
			"code": table.Code(i),
			"name": table.Name(i),
		})
	}

	return jsonResult(map[string]interface{}{
		"categories": categories,
		"first_year": table.FirstYear(),
		"last_year":  table.LastYear(),
		"years":      table.Years(),
	})
}

// HandleYearlyListing handles the yearly_listing tool
func (h *HandlerSet) HandleYearlyListing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleReport(ctx, request, domain.ReportKindListing)
}

// HandleWindowStats handles the window_stats tool
func (h *HandlerSet) HandleWindowStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleReport(ctx, request, domain.ReportKindWindowStats)
}

// HandleYearOverYear handles the year_over_year tool
func (h *HandlerSet) HandleYearOverYear(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleReport(ctx, request, domain.ReportKindYearOverYear)
}

// HandleChartSeries handles the chart_series tool. The secondary series is
// returned both raw and divided by the configured scale.
func (h *HandlerSet) HandleChartSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleReport(ctx, request, domain.ReportKindChart)
}

func (h *HandlerSet) handleReport(ctx context.Context, request mcp.CallToolRequest, kind domain.ReportKind) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, dataPath, err := h.buildRequest(args, kind)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	logger := logging.WithComponent("mcp")
	logger.Debug("tool called", "report", kind, "category", req.Category, "data_path", dataPath)

	table, err := h.deps.LoadTable(ctx, dataPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load dataset: %v", err)), nil
	}

	response, err := h.deps.ReportService().Generate(ctx, table, req)
	if err != nil {
		logger.Warn("report failed", "report", kind, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	if kind == domain.ReportKindChart && response.Chart != nil {
		scale := h.deps.Config().Chart.SecondaryScale
		return jsonResult(map[string]interface{}{
			"report":           response,
			"secondary_scale":  scale,
			"secondary_scaled": service.ScaleSeries(response.Chart.Secondary, scale),
			"ratio_title":      service.RatioTitle(response.Chart),
			"secondary_title":  service.SecondaryTitle(response.Chart, scale),
		})
	}
	return jsonResult(response)
}

// buildRequest turns tool arguments into a report request seeded from the configuration
func (h *HandlerSet) buildRequest(args map[string]interface{}, kind domain.ReportKind) (domain.ReportRequest, string, error) {
	cfg := h.deps.Config()

	req := domain.DefaultReportRequest(kind)
	req.WindowSize = cfg.Report.WindowSize
	req.ThresholdPercent = cfg.Report.ThresholdPercent
	req.ListingCategory = cfg.Report.ListingCategory
	req.ChartRoles = cfg.ChartRoles()
	req.OutputFormat = domain.OutputFormatJSON

	dataPath, err := optionalString(args, "data_path")
	if err != nil {
		return req, "", err
	}

	if kind.NeedsCategory() {
		req.Category, err = optionalString(args, "category")
		if err != nil {
			return req, "", err
		}
		if req.Category == "" && kind != domain.ReportKindListing {
			return req, "", fmt.Errorf("category parameter is required and must be a string")
		}
	}

	if kind == domain.ReportKindWindowStats {
		if v, ok, err := optionalNumber(args, "window_size"); err != nil {
			return req, "", err
		} else if ok {
			if v != float64(int(v)) {
				return req, "", fmt.Errorf("window_size must be a whole number")
			}
			req.WindowSize = int(v)
		}
		if req.WindowSize < 1 {
			return req, "", domain.NewInvalidWindowError(req.WindowSize)
		}
	}

	if kind == domain.ReportKindYearOverYear {
		if v, ok, err := optionalNumber(args, "threshold"); err != nil {
			return req, "", err
		} else if ok {
			req.ThresholdPercent = v
		}
		if req.ThresholdPercent < 0 {
			return req, "", fmt.Errorf("threshold cannot be negative")
		}
	}

	return req, dataPath, nil
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, true
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func optionalString(args map[string]interface{}, key string) (string, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s parameter must be a string", key)
	}
	return s, nil
}

func optionalNumber(args map[string]interface{}, key string) (float64, bool, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("%s parameter must be a number", key)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
