package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/netair/conciliador/internal/domain"
)

const sheetName = "Importação Conta Azul"

// WriteXLSX writes entries as a workbook with a bold header and fitted
// column widths. Returns false without writing when no row survives the
// zero-amount filter.
func WriteXLSX(w io.Writer, entries []domain.LedgerEntry) (bool, error) {
	return writeWorkbook(w, Rows(entries))
}

func writeWorkbook(w io.Writer, rows [][]string) (bool, error) {
	if len(rows) == 0 {
		return false, nil
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return false, fmt.Errorf("rename sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return false, fmt.Errorf("header style: %w", err)
	}

	widths := make([]int, len(Header))
	for col, name := range Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return false, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, boldStyle); err != nil {
			return false, fmt.Errorf("header cell style: %w", err)
		}
		widths[col] = len([]rune(name))
	}

	for i, row := range rows {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return false, fmt.Errorf("row %d: %w", i+2, err)
			}
			if n := len([]rune(value)); n > widths[col] {
				widths[col] = n
			}
		}
	}

	for col := range Header {
		name, _ := excelize.ColumnNumberToName(col + 1)
		width := widths[col] + 2
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(sheetName, name, name, float64(width)); err != nil {
			return false, fmt.Errorf("column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return false, fmt.Errorf("write workbook: %w", err)
	}
	return true, nil
}
