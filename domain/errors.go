package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeInvalidWindow     = "INVALID_WINDOW"
	ErrCodeDivisionUndefined = "DIVISION_UNDEFINED"
	ErrCodeMalformedRow      = "MALFORMED_ROW"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// HasCode reports whether any error in err's chain is a DomainError with the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		var de DomainError
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Cause
	}
	return false
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewInvalidWindowError creates an error for a non-positive window size
func NewInvalidWindowError(size int) error {
	return NewDomainError(ErrCodeInvalidWindow, fmt.Sprintf("window size must be positive, got %d", size), nil)
}

// NewDivisionUndefinedError creates an error for a zero divisor in a series computation
func NewDivisionUndefinedError(category string, year int) error {
	return NewDomainError(ErrCodeDivisionUndefined,
		fmt.Sprintf("division by zero: %s has a count of 0 in %d", category, year), nil)
}

// NewMalformedRowError creates an error for a data row that cannot be parsed
func NewMalformedRowError(row int, message string, cause error) error {
	return NewDomainError(ErrCodeMalformedRow, fmt.Sprintf("row %d: %s", row, message), cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}
