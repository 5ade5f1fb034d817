package mcp

import (
	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/config"
)

func NewTestDependencies(loader domain.TableLoader, svc domain.ReportService, cfg *config.Config) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		loader:  loader,
		service: svc,
		config:  cfg,
	}
}
