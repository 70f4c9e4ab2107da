package domain

// Fixed counterparty stamped on every exported entry.
const (
	CounterpartyName  = "MERCADO LIVRE"
	CounterpartyTaxID = "03007331000141"
)

// LedgerEntry is one classified accounting entry, ready for import. Positive
// amounts are credits/revenue, negative amounts are debits/expenses. Entries
// are created once by a classification rule and never mutated; entries whose
// rounded amount is zero are dropped at export.
type LedgerEntry struct {
	OperationID string
	AccrualDate string // dd/mm/yyyy
	PaymentDate string // dd/mm/yyyy, may be empty for forecasts
	DueDate     string // mirrors PaymentDate
	Category    string // resolved chart label
	Amount      float64
	CostCenter  string // empty for transfers
	Description string
	Notes       string
}
