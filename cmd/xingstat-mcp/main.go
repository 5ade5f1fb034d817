package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/internal/logging"
	"github.com/ludo-technologies/xingstat/internal/version"
	"github.com/ludo-technologies/xingstat/mcp"
)

const serverName = "xingstat"

func main() {
	_ = godotenv.Load()

	// XINGSTAT_CONFIG names the config file; otherwise the usual discovery applies
	cfg, err := config.LoadConfig(os.Getenv("XINGSTAT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries JSON-RPC
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg)))

	logger.Info("starting MCP server",
		"name", serverName,
		"version", version.Short(),
		"data", cfg.Data.Path,
		"tools", []string{mcp.ToolListCategories, mcp.ToolYearlyListing, mcp.ToolWindowStats, mcp.ToolYearOverYear, mcp.ToolChartSeries})

	if err := mcpserver.ServeStdio(server); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
