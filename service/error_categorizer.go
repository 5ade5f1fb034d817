package service

import (
	"errors"
	"strings"

	"github.com/ludo-technologies/xingstat/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns []errorPattern
}

type errorPattern struct {
	category domain.ErrorCategory
	needles  []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		codes: map[string]domain.ErrorCategory{
			domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
			domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
			domain.ErrCodeMalformedRow:      domain.ErrorCategoryData,
			domain.ErrCodeInvalidWindow:     domain.ErrorCategoryArithmetic,
			domain.ErrCodeDivisionUndefined: domain.ErrorCategoryArithmetic,
			domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
			domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
			domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
		},
		// Checked in order; the first match wins.
		patterns: []errorPattern{
			{domain.ErrorCategoryConfig, []string{"config", "toml", "yaml"}},
			{domain.ErrorCategoryInput, []string{"no such file", "not found", "permission denied", "unknown category"}},
			{domain.ErrorCategoryData, []string{"parse", "row", "csv", "workbook", "sheet"}},
			{domain.ErrorCategoryOutput, []string{"write", "output", "cannot create"}},
		},
	}
}

// Categorize determines the category of an error. Domain error codes take
// precedence over message patterns.
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	var de domain.DomainError
	if errors.As(err, &de) {
		if category, ok := ec.codes[de.Code]; ok {
			return &domain.CategorizedError{
				Category: category,
				Message:  ec.getCategoryMessage(category),
				Original: err,
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, p := range ec.patterns {
		if containsAnyPattern(errMsg, p.needles) {
			return &domain.CategorizedError{
				Category: p.category,
				Message:  ec.getCategoryMessage(p.category),
				Original: err,
			}
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the dataset file exists: xingstat --data path/to/file.csv",
			"Glob patterns such as 'data/**/*.csv' pick the first match in lexical order",
			"Run: xingstat categories to see the valid category names and codes",
		},
		domain.ErrorCategoryData: {
			"The first row is a header and is skipped",
			"Every other row must be: name, count, count, ... with integer counts",
			"All rows need the same number of yearly values",
		},
		domain.ErrorCategoryArithmetic: {
			"A zero count cannot be used as a divisor; pick another category",
			"Window sizes must be at least 1",
			"Check chart.numerator and chart.denominator in your configuration",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: xingstat init to generate a valid .xingstat.toml",
			"Check XINGSTAT_* environment variables for typos",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for output.directory",
			"Use --format text or write to a different location",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to find or read the requested input",
		domain.ErrorCategoryData:       "The dataset could not be parsed",
		domain.ErrorCategoryArithmetic: "The report is undefined for this data",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
