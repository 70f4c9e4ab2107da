package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/netair/conciliador/internal/domain"
)

// utf8BOM lets spreadsheet software detect the encoding of accented labels.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes entries as a ";"-separated UTF-8 CSV with BOM. Returns
// false without writing when every entry rounds to zero.
func WriteCSV(w io.Writer, entries []domain.LedgerEntry) (bool, error) {
	rows := Rows(entries)
	if len(rows) == 0 {
		return false, nil
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return false, fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(Header); err != nil {
		return false, fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return false, fmt.Errorf("write rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return false, fmt.Errorf("flush: %w", err)
	}
	return true, nil
}

// WriteDiagnosticsCSV dumps unclassified statement rows for manual review.
func WriteDiagnosticsCSV(w io.Writer, rows []domain.StatementRow) (bool, error) {
	if len(rows) == 0 {
		return false, nil
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return false, fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write([]string{"ID Operação", "Data", "Tipo", "Valor"}); err != nil {
		return false, fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.OpID, r.Date, r.Type, fmt.Sprintf("%.2f", r.NetAmount)}
		if err := cw.Write(rec); err != nil {
			return false, fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return false, fmt.Errorf("flush: %w", err)
	}
	return true, nil
}
