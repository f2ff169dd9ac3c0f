package horizon

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads sheets from an .xlsx workbook, one worksheet per sheet.
type WorkbookSource struct {
	Path string
}

func (w WorkbookSource) Records(_ context.Context, sheet string) ([]Record, error) {
	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %q: %w", w.Path, err)
	}
	defer f.Close()

	return WorkbookRecords(f, sheet)
}

// WorkbookRecords reads a worksheet as header plus data rows. Rows without
// any value are skipped.
//
// Numeric cells come out of the workbook with a '.' decimal point; they are
// rewritten with a ',' so that Number reads them back unchanged.
func WorkbookRecords(f *excelize.File, sheet string) ([]Record, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("could not read worksheet %q: %w", sheet, err)
	}
	kept := rows[:0]
	for _, row := range rows {
		for j, cell := range row {
			row[j] = workbookCell(cell)
		}
		// the workbook reports formatted but empty rows too.
		if !blankRow(row) {
			kept = append(kept, row)
		}
	}
	return RecordsFromRows(kept), nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

func workbookCell(cell string) string {
	cell = trimSpace(cell)
	if _, err := strconv.ParseFloat(cell, 64); err != nil {
		return cell
	}
	return strings.Replace(cell, ".", ",", 1)
}
