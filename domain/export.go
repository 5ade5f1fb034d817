package domain

import (
	"context"
	"time"
)

// ExportRequest asks for every report of every category to be written to a directory
type ExportRequest struct {
	DataPath  string
	Format    OutputFormat
	Directory string

	WindowSize       int
	ThresholdPercent float64
	ListingCategory  string
	ChartRoles       ChartRoles

	// Concurrency bounds the number of reports written at once; 0 means no limit
	Concurrency int
}

// ExportResponse lists the files written by an export, in task order
type ExportResponse struct {
	Directory string   `json:"directory" yaml:"directory"`
	Files     []string `json:"files" yaml:"files"`
}

// ExecutableTask is one unit of work for the ParallelExecutor
type ExecutableTask interface {
	// Name identifies the task in errors
	Name() string

	// Execute runs the task and returns the path it produced
	Execute(ctx context.Context) (string, error)
}

// ParallelExecutor runs independent tasks concurrently
type ParallelExecutor interface {
	// Execute runs every task and returns their results in task order
	Execute(ctx context.Context, tasks []ExecutableTask) ([]string, error)

	// SetMaxConcurrency limits the number of running tasks; 0 means no limit
	SetMaxConcurrency(max int)

	// SetTimeout bounds the whole run
	SetTimeout(timeout time.Duration)

	// OnTaskDone registers a callback invoked after each finished task
	OnTaskDone(fn func(done, total int))
}
