package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/xingstat/domain"
	"github.com/ludo-technologies/xingstat/internal/dataset"
)

// TableLoaderImpl loads a dataset from a CSV or XLSX file
type TableLoaderImpl struct {
	sheet  string
	logger *slog.Logger
}

// NewTableLoader creates a loader. sheet selects the worksheet of .xlsx files.
func NewTableLoader(sheet string) *TableLoaderImpl {
	return &TableLoaderImpl{
		sheet:  sheet,
		logger: slog.Default().With("component", "loader"),
	}
}

// Load resolves path (a file or glob pattern) and parses it
func (l *TableLoaderImpl) Load(ctx context.Context, path string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := ResolveDataPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, domain.NewFileNotFoundError(resolved, err)
	}
	defer file.Close()

	var table *domain.Table
	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".xlsx", ".xlsm":
		table, err = dataset.ParseXLSX(file, l.sheet)
	default:
		table, err = dataset.ParseCSV(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", resolved, err)
	}

	l.logger.Debug("dataset loaded",
		"path", resolved,
		"categories", table.Len(),
		"first_year", table.FirstYear(),
		"last_year", table.LastYear())

	return table, nil
}

// ResolveDataPath turns a file path or doublestar pattern into one existing
// file. For patterns the first match in lexical order wins.
func ResolveDataPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", domain.NewInvalidInputError("no dataset path given", nil)
	}

	if !isGlobPattern(path) {
		info, err := os.Stat(path)
		if err != nil {
			return "", domain.NewFileNotFoundError(path, err)
		}
		if info.IsDir() {
			return "", domain.NewInvalidInputError(fmt.Sprintf("dataset path is a directory: %s", path), nil)
		}
		return path, nil
	}

	if !doublestar.ValidatePathPattern(path) {
		return "", domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", path), nil)
	}

	matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
	if err != nil {
		return "", domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", path), err)
	}
	if len(matches) == 0 {
		return "", domain.NewFileNotFoundError(path, os.ErrNotExist)
	}

	sort.Strings(matches)
	return matches[0], nil
}

func isGlobPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
