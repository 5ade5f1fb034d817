package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ludo-technologies/xingstat/domain"
)

// ParseXLSX reads rows from a workbook. An empty sheet name selects the first sheet.
func ParseXLSX(r io.Reader, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to open workbook", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, domain.NewValidationError("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	return ParseRows(rows)
}
