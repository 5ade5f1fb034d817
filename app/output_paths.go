package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ludo-technologies/xingstat/domain"
)

// TimestampedFileName generates a filename with a timestamp suffix
func TimestampedFileName(command, extension string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", command, t.Format("20060102_150405"), extension)
}

// ReportFileName names one exported report, e.g. "stats_a_bus_passengers.json".
// The selection code keeps names unique when two categories share a slug.
// The chart has no category and is named after its kind alone.
func ReportFileName(kind domain.ReportKind, code, category string, format domain.OutputFormat) string {
	if category == "" {
		return fmt.Sprintf("%s.%s", kind, format.Extension())
	}
	return fmt.Sprintf("%s_%s_%s.%s", kind, Slug(code), Slug(category), format.Extension())
}

// Slug lowercases name and replaces every run of non-alphanumerics with "_"
func Slug(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "category"
	}
	return b.String()
}

// EnsureDirectory creates dir and its parents
func EnsureDirectory(dir string) error {
	if dir == "" {
		return domain.NewInvalidInputError("output directory is empty", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}
	return nil
}

// OutputFilePath joins dir and a timestamped name for command, creating dir
func OutputFilePath(dir, command string, format domain.OutputFormat, t time.Time) (string, error) {
	if err := EnsureDirectory(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, TimestampedFileName(command, format.Extension(), t)), nil
}
