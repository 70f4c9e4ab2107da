// Package export serializes reconciliation results into the bookkeeping
// import formats: ";"-separated CSV, XLSX workbooks and the ZIP bundle the
// API returns.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/netair/conciliador/internal/domain"
)

// Header is the import column order expected by the bookkeeping system.
var Header = []string{
	"Data de Competência",
	"Data de Vencimento",
	"Data de Pagamento",
	"Valor",
	"Categoria",
	"Descrição",
	"Cliente/Fornecedor",
	"CNPJ/CPF Cliente/Fornecedor",
	"Centro de Custo",
	"Observações",
}

// Rows renders ledger entries in export column order. Amounts are rounded to
// two decimals; entries rounding to zero are dropped.
func Rows(entries []domain.LedgerEntry) [][]string {
	out := make([][]string, 0, len(entries))
	for _, e := range entries {
		amount := decimal.NewFromFloat(e.Amount).Round(2)
		if amount.IsZero() {
			continue
		}
		out = append(out, []string{
			e.AccrualDate,
			e.DueDate,
			e.PaymentDate,
			amount.StringFixed(2),
			e.Category,
			e.Description,
			domain.CounterpartyName,
			domain.CounterpartyTaxID,
			e.CostCenter,
			e.Notes,
		})
	}
	return out
}
