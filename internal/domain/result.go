package domain

// Result collects everything one reconciliation run produced. It is built
// fresh per invocation and handed to the export layer; nothing is persisted.
type Result struct {
	Confirmed    []LedgerEntry  // cash-basis, backed by the statement
	Forecast     []LedgerEntry  // accrual-basis, settled but not released
	BillPayments []LedgerEntry
	Transfers    []LedgerEntry
	Unclassified []StatementRow // statement rows no rule matched
	Summary      Summary
}

// Summary carries the per-bucket counts and origin breakdown reported back to
// the caller.
type Summary struct {
	Confirmed    int            `json:"confirmados"`
	Forecast     int            `json:"previsao"`
	BillPayments int            `json:"pagamentos"`
	Transfers    int            `json:"transferencias"`
	Unclassified int            `json:"nao_classificados"`
	ByOrigin     map[Origin]int `json:"origens"`
}
