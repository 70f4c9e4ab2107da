package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"

	"github.com/netair/conciliador/internal/domain"
)

// Output file names inside the archive.
const (
	fileConfirmedCSV     = "IMPORTACAO_CONTA_AZUL_CONFIRMADOS.csv"
	fileConfirmedXLSX    = "IMPORTACAO_CONTA_AZUL_CONFIRMADOS.xlsx"
	fileConfirmedSummary = "IMPORTACAO_CONTA_AZUL_CONFIRMADOS_RESUMO.xlsx"
	fileForecastCSV      = "IMPORTACAO_CONTA_AZUL_PREVISAO.csv"
	fileForecastXLSX     = "IMPORTACAO_CONTA_AZUL_PREVISAO.xlsx"
	fileForecastSummary  = "IMPORTACAO_CONTA_AZUL_PREVISAO_RESUMO.xlsx"
	fileBillPaymentsCSV  = "PAGAMENTO_CONTAS.csv"
	fileBillPaymentsXLSX = "PAGAMENTO_CONTAS.xlsx"
	fileTransfersCSV     = "TRANSFERENCIAS.csv"
	fileTransfersXLSX    = "TRANSFERENCIAS.xlsx"
	fileUnclassifiedCSV  = "NAO_CLASSIFICADOS.csv"
)

// ErrNothingToExport is returned when no bucket produced a single non-zero
// entry — almost always a sign the input reports were empty or mismatched.
var ErrNothingToExport = errors.New("no output files generated")

// Archive builds the result ZIP. Empty buckets produce no files; confirmed
// and forecast buckets additionally get a grouped summary workbook.
func Archive(result *domain.Result) ([]byte, []string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var names []string

	add := func(name string, render func(w *bytes.Buffer) (bool, error)) error {
		wrote, err := writeMember(zw, name, render)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if wrote {
			names = append(names, name)
		}
		return nil
	}

	buckets := []struct {
		csvName, xlsxName, summaryName string
		entries                        []domain.LedgerEntry
	}{
		{fileConfirmedCSV, fileConfirmedXLSX, fileConfirmedSummary, result.Confirmed},
		{fileForecastCSV, fileForecastXLSX, fileForecastSummary, result.Forecast},
		{fileBillPaymentsCSV, fileBillPaymentsXLSX, "", result.BillPayments},
		{fileTransfersCSV, fileTransfersXLSX, "", result.Transfers},
	}

	for _, b := range buckets {
		entries := b.entries
		if err := add(b.csvName, func(w *bytes.Buffer) (bool, error) {
			return WriteCSV(w, entries)
		}); err != nil {
			return nil, nil, err
		}
		if err := add(b.xlsxName, func(w *bytes.Buffer) (bool, error) {
			return WriteXLSX(w, entries)
		}); err != nil {
			return nil, nil, err
		}
		if b.summaryName == "" {
			continue
		}
		if err := add(b.summaryName, func(w *bytes.Buffer) (bool, error) {
			return WriteSummaryXLSX(w, entries)
		}); err != nil {
			return nil, nil, err
		}
	}

	if err := add(fileUnclassifiedCSV, func(w *bytes.Buffer) (bool, error) {
		return WriteDiagnosticsCSV(w, result.Unclassified)
	}); err != nil {
		return nil, nil, err
	}

	if len(names) == 0 {
		zw.Close()
		return nil, nil, ErrNothingToExport
	}
	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), names, nil
}

// writeMember renders into a scratch buffer first so empty outputs leave no
// zero-byte archive member behind.
func writeMember(zw *zip.Writer, name string, render func(w *bytes.Buffer) (bool, error)) (bool, error) {
	var scratch bytes.Buffer
	wrote, err := render(&scratch)
	if err != nil || !wrote {
		return false, err
	}
	f, err := zw.Create(name)
	if err != nil {
		return false, fmt.Errorf("create member: %w", err)
	}
	if _, err := f.Write(scratch.Bytes()); err != nil {
		return false, fmt.Errorf("write member: %w", err)
	}
	return true, nil
}
