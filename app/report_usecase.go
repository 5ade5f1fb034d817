package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/service"
)

// ReportUseCase loads the dataset and writes one report
type ReportUseCase struct {
	loader    domain.TableLoader
	service   domain.ReportService
	formatter domain.ReportFormatter
	output    domain.ReportWriter
}

// NewReportUseCase creates a new report use case
func NewReportUseCase(
	loader domain.TableLoader,
	service domain.ReportService,
	formatter domain.ReportFormatter,
	output domain.ReportWriter,
) *ReportUseCase {
	return &ReportUseCase{
		loader:    loader,
		service:   service,
		formatter: formatter,
		output:    output,
	}
}

// Execute loads dataPath and writes the report described by req
func (uc *ReportUseCase) Execute(ctx context.Context, dataPath string, req domain.ReportRequest) error {
	if err := uc.validateRequest(req); err != nil {
		return err
	}

	table, err := uc.loader.Load(ctx, dataPath)
	if err != nil {
		return err
	}

	return uc.Render(ctx, table, req)
}

// Render writes the report described by req for an already loaded table
func (uc *ReportUseCase) Render(ctx context.Context, table *domain.Table, req domain.ReportRequest) error {
	response, err := uc.service.Generate(ctx, table, req)
	if err != nil {
		return err
	}

	return uc.output.Write(req.OutputWriter, req.OutputPath, req.OutputFormat, req.NoOpen, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

// validateRequest validates the report request
func (uc *ReportUseCase) validateRequest(req domain.ReportRequest) error {
	if req.OutputWriter == nil && req.OutputPath == "" {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer or output path is required"))
	}
	if _, err := domain.ParseOutputFormat(string(req.OutputFormat)); err != nil {
		return err
	}
	if req.Kind == domain.ReportKindWindowStats && req.WindowSize < 1 {
		return domain.NewInvalidWindowError(req.WindowSize)
	}
	if req.ThresholdPercent < 0 {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("threshold cannot be negative"))
	}
	return nil
}

// ReportUseCaseBuilder provides a builder pattern for creating ReportUseCase
type ReportUseCaseBuilder struct {
	loader    domain.TableLoader
	service   domain.ReportService
	formatter domain.ReportFormatter
	output    domain.ReportWriter
}

// NewReportUseCaseBuilder creates a new builder
func NewReportUseCaseBuilder() *ReportUseCaseBuilder {
	return &ReportUseCaseBuilder{}
}

// WithLoader sets the table loader
func (b *ReportUseCaseBuilder) WithLoader(loader domain.TableLoader) *ReportUseCaseBuilder {
	b.loader = loader
	return b
}

// WithService sets the report service
func (b *ReportUseCaseBuilder) WithService(service domain.ReportService) *ReportUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the report formatter
func (b *ReportUseCaseBuilder) WithFormatter(formatter domain.ReportFormatter) *ReportUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithOutputWriter sets the report writer
func (b *ReportUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *ReportUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the ReportUseCase. The output writer defaults to a
// FileOutputWriter reporting on stderr.
func (b *ReportUseCaseBuilder) Build() (*ReportUseCase, error) {
	if b.loader == nil {
		return nil, fmt.Errorf("table loader is required")
	}
	if b.service == nil {
		return nil, fmt.Errorf("report service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("report formatter is required")
	}
	if b.output == nil {
		b.output = service.NewFileOutputWriter(nil)
	}

	return NewReportUseCase(b.loader, b.service, b.formatter, b.output), nil
}
