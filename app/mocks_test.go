package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/xingstat/domain"
)

type mockTableLoader struct {
	mock.Mock
}

func (m *mockTableLoader) Load(ctx context.Context, path string) (*domain.Table, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Generate(ctx context.Context, table *domain.Table, req domain.ReportRequest) (*domain.ReportResponse, error) {
	args := m.Called(ctx, table, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportResponse), args.Error(1)
}

type mockReportFormatter struct {
	mock.Mock
}

func (m *mockReportFormatter) Format(response *domain.ReportResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockReportFormatter) Write(response *domain.ReportResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockReportWriter struct {
	mock.Mock
}

func (m *mockReportWriter) Write(writer io.Writer, outputPath string, format domain.OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error {
	args := m.Called(writer, outputPath, format, noOpen)
	if err := args.Error(0); err != nil {
		return err
	}
	return writeFunc(writer)
}
