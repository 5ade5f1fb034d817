package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ToolListCategories = "list_categories"
	ToolYearlyListing  = "yearly_listing"
	ToolWindowStats    = "window_stats"
	ToolYearOverYear   = "year_over_year"
	ToolChartSeries    = "chart_series"
)

func dataPathOption() mcp.ToolOption {
	return mcp.WithString("data_path",
		mcp.Description("Dataset file or glob pattern (.csv or .xlsx). Default: the configured data.path"))
}

// RegisterTools registers all xingstat MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool(ToolListCategories,
		mcp.WithDescription("List the categories of the border crossing dataset with their selection codes and year range"),
		dataPathOption(),
	), h.HandleListCategories)

	s.AddTool(mcp.NewTool(ToolYearlyListing,
		mcp.WithDescription("Yearly counts of one category"),
		dataPathOption(),
		mcp.WithString("category",
			mcp.Description("Category name or selection code. Default: the configured listing category (buses)")),
	), h.HandleYearlyListing)

	s.AddTool(mcp.NewTool(ToolWindowStats,
		mcp.WithDescription("Truncated mean and peak year of a category over the leading window of years"),
		dataPathOption(),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category name or selection code")),
		mcp.WithNumber("window_size",
			mcp.Description("Number of leading years (default: 8)")),
	), h.HandleWindowStats)

	s.AddTool(mcp.NewTool(ToolYearOverYear,
		mcp.WithDescription("Year on year percentage changes of a category, flagging increases strictly above the threshold"),
		dataPathOption(),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category name or selection code")),
		mcp.WithNumber("threshold",
			mcp.Description("Increase in percent above which a pair is flagged (default: 5)")),
	), h.HandleYearOverYear)

	s.AddTool(mcp.NewTool(ToolChartSeries,
		mcp.WithDescription("Bus passengers per bus and personal vehicles series behind the chart"),
		dataPathOption(),
	), h.HandleChartSeries)
}
