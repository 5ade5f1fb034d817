package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

// ExportUseCase writes every report for every category to a directory
type ExportUseCase struct {
	loader    domain.TableLoader
	service   domain.ReportService
	formatter domain.ReportFormatter
	executor  domain.ParallelExecutor
	progress  domain.ProgressManager
}

// NewExportUseCase creates a new export use case
func NewExportUseCase(
	loader domain.TableLoader,
	service domain.ReportService,
	formatter domain.ReportFormatter,
	executor domain.ParallelExecutor,
	progress domain.ProgressManager,
) *ExportUseCase {
	return &ExportUseCase{
		loader:    loader,
		service:   service,
		formatter: formatter,
		executor:  executor,
		progress:  progress,
	}
}

// Execute loads the dataset and writes one file per report and category.
// Files that could be written are kept even when others fail.
func (uc *ExportUseCase) Execute(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	table, err := uc.loader.Load(ctx, req.DataPath)
	if err != nil {
		return nil, err
	}

	if err := EnsureDirectory(req.Directory); err != nil {
		return nil, err
	}

	tasks := uc.buildTasks(table, req)

	if uc.progress != nil {
		uc.progress.Initialize(len(tasks))
		uc.progress.Start()
		defer uc.progress.Close()
		uc.executor.OnTaskDone(uc.progress.Update)
	}
	if req.Concurrency > 0 {
		uc.executor.SetMaxConcurrency(req.Concurrency)
	}

	files, err := uc.executor.Execute(ctx, tasks)
	if uc.progress != nil {
		uc.progress.Complete(err == nil)
	}

	response := &domain.ExportResponse{Directory: req.Directory}
	for _, f := range files {
		if f != "" {
			response.Files = append(response.Files, f)
		}
	}
	if err != nil {
		return response, fmt.Errorf("export incomplete: %w", err)
	}
	return response, nil
}

// buildTasks creates one task per report kind and category, in menu order
func (uc *ExportUseCase) buildTasks(table *domain.Table, req domain.ExportRequest) []domain.ExecutableTask {
	var tasks []domain.ExecutableTask
	for _, kind := range domain.AllReportKinds() {
		if !kind.NeedsCategory() {
			tasks = append(tasks, uc.task(table, req, kind, -1))
			continue
		}
		for i := 0; i < table.Len(); i++ {
			tasks = append(tasks, uc.task(table, req, kind, i))
		}
	}
	return tasks
}

func (uc *ExportUseCase) task(table *domain.Table, req domain.ExportRequest, kind domain.ReportKind, index int) domain.ExecutableTask {
	category := table.Name(index)
	path := filepath.Join(req.Directory, ReportFileName(kind, table.Code(index), category, req.Format))

	name := string(kind)
	if category != "" {
		name = fmt.Sprintf("%s/%s", kind, category)
	}

	return service.NewFuncTask(name, func(ctx context.Context) (string, error) {
		rr := domain.DefaultReportRequest(kind)
		rr.CategoryIndex = index
		rr.WindowSize = req.WindowSize
		rr.ThresholdPercent = req.ThresholdPercent
		rr.ListingCategory = req.ListingCategory
		rr.ChartRoles = req.ChartRoles

		response, err := uc.service.Generate(ctx, table, rr)
		if err != nil {
			return "", err
		}
		return path, writeReportFile(path, func(f *os.File) error {
			return uc.formatter.Write(response, req.Format, f)
		})
	})
}

func writeReportFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create %s", path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to close %s", path), err)
	}
	return nil
}

// validateRequest validates the export request
func (uc *ExportUseCase) validateRequest(req domain.ExportRequest) error {
	if _, err := domain.ParseOutputFormat(string(req.Format)); err != nil {
		return err
	}
	if req.Directory == "" {
		return domain.NewInvalidInputError("export directory is required", nil)
	}
	if req.WindowSize < 1 {
		return domain.NewInvalidWindowError(req.WindowSize)
	}
	if req.ThresholdPercent < 0 {
		return domain.NewInvalidInputError("threshold cannot be negative", nil)
	}
	return nil
}

// ExportUseCaseBuilder provides a builder pattern for creating ExportUseCase
type ExportUseCaseBuilder struct {
	loader    domain.TableLoader
	service   domain.ReportService
	formatter domain.ReportFormatter
	executor  domain.ParallelExecutor
	progress  domain.ProgressManager
}

// NewExportUseCaseBuilder creates a new builder
func NewExportUseCaseBuilder() *ExportUseCaseBuilder {
	return &ExportUseCaseBuilder{}
}

// WithLoader sets the table loader
func (b *ExportUseCaseBuilder) WithLoader(loader domain.TableLoader) *ExportUseCaseBuilder {
	b.loader = loader
	return b
}

// WithService sets the report service
func (b *ExportUseCaseBuilder) WithService(service domain.ReportService) *ExportUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the report formatter
func (b *ExportUseCaseBuilder) WithFormatter(formatter domain.ReportFormatter) *ExportUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithExecutor sets the parallel executor
func (b *ExportUseCaseBuilder) WithExecutor(executor domain.ParallelExecutor) *ExportUseCaseBuilder {
	b.executor = executor
	return b
}

// WithProgress sets the progress manager
func (b *ExportUseCaseBuilder) WithProgress(progress domain.ProgressManager) *ExportUseCaseBuilder {
	b.progress = progress
	return b
}

// Build creates the ExportUseCase. The executor defaults to an unbounded
// ParallelExecutor; progress is optional.
func (b *ExportUseCaseBuilder) Build() (*ExportUseCase, error) {
	if b.loader == nil {
		return nil, fmt.Errorf("table loader is required")
	}
	if b.service == nil {
		return nil, fmt.Errorf("report service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("report formatter is required")
	}
	if b.executor == nil {
		b.executor = service.NewParallelExecutor()
	}

	return NewExportUseCase(b.loader, b.service, b.formatter, b.executor, b.progress), nil
}
