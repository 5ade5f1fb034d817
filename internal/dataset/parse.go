// Package dataset turns delimited or spreadsheet rows into a domain.Table.
//
// The first row is a header of years and is skipped. Every following
// non-blank row is a category: its first cell is the display name and the
// remaining cells are integer counts for consecutive years from 2000.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ludo-technologies/xingstat/domain"
)

// ParseCSV reads comma separated rows from r
func ParseCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, domain.NewMalformedRowError(parseErr.Line, "invalid csv", err)
			}
			return nil, domain.NewInvalidInputError("failed to read csv", err)
		}
		rows = append(rows, record)
	}

	return ParseRows(rows)
}

// ParseRows builds a table from already split rows, header included.
// Row numbers in errors are 1-based and count the header.
func ParseRows(rows [][]string) (*domain.Table, error) {
	if len(rows) < 2 {
		return nil, domain.NewValidationError("dataset needs a header row and at least one category row")
	}

	width := len(trimTrailingEmpty(rows[0], 0))

	categories := make([]domain.Category, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}
		cells := trimTrailingEmpty(row, width)

		name := strings.TrimSpace(cells[0])
		if name == "" {
			return nil, domain.NewMalformedRowError(rowNum, "missing category name", nil)
		}
		if len(cells) < 2 {
			return nil, domain.NewMalformedRowError(rowNum, fmt.Sprintf("category %q has no values", name), nil)
		}

		values := make([]int, 0, len(cells)-1)
		for col, cell := range cells[1:] {
			v, err := parseCount(cell)
			if err != nil {
				return nil, domain.NewMalformedRowError(rowNum,
					fmt.Sprintf("column %d of %q is not an integer: %q", col+2, name, cell), err)
			}
			values = append(values, v)
		}
		categories = append(categories, domain.Category{Name: name, Values: values})
	}

	return domain.NewTable(categories)
}

// groupedCount matches counts written with thousands separators, e.g. 1,234,567
var groupedCount = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+$`)

func parseCount(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	if strings.Contains(s, ",") {
		if !groupedCount.MatchString(s) {
			return 0, fmt.Errorf("misplaced thousands separator in %q", s)
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	return strconv.Atoi(s)
}

// trimTrailingEmpty drops blank cells past the first width columns
func trimTrailingEmpty(row []string, width int) []string {
	end := len(row)
	for end > width && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
