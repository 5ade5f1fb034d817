package mcp

import (
	"context"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/config"
	"github.com/ludo-technologies/xingstat/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	loader  domain.TableLoader
	service domain.ReportService
	config  *config.Config
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		loader:  service.NewTableLoader(cfg.Data.Sheet),
		service: service.NewReportService(),
		config:  cfg,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// LoadTable loads the dataset at path, or the configured one when path is empty
func (d *Dependencies) LoadTable(ctx context.Context, path string) (*domain.Table, error) {
	if path == "" {
		path = d.config.Data.Path
	}
	return d.loader.Load(ctx, path)
}

// ReportService returns the engine used to compute reports
func (d *Dependencies) ReportService() domain.ReportService {
	return d.service
}
