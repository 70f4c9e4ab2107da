package domain

// Report row shapes. Each report is validated and typed once at the ingestion
// boundary; the reconciliation core never reads raw fields by name again.
// Amount fields default to 0 and date fields to "" when absent.

// SettlementRow is one line of the settlement ("dinheiro em conta") report.
type SettlementRow struct {
	OpID            string
	Type            string // SETTLEMENT, REFUND, CHARGEBACK, PAYOUT, ...
	Date            string // dd/mm/yyyy
	MoneyReleaseAt  string // dd/mm/yyyy, empty when not yet scheduled
	Amount          float64
	RealAmount      float64
	FeeAmount       float64
	ShippingFee     float64
	SubUnit         string
	ExternalRef     string
	OrderID         string
}

// SalesRow is one line of the sales/collection report.
type SalesRow struct {
	OpID           string
	Reason         string
	ProductValue   float64
	ShippingCost   float64
	ShipmentStatus string
	OrderID        string
	CreatedAt      string // dd/mm/yyyy
	ReleasedAt     string // dd/mm/yyyy
}

// PostSaleRow is one line of the post-sale/after-collection report.
type PostSaleRow struct {
	OpID         string
	ReasonDetail string
}

// ReleaseRow is one line of the reserve-release detail report.
type ReleaseRow struct {
	OpID         string
	Date         string // dd/mm/yyyy
	Description  string // payment, refund, chargeback, mediation, ...
	RecordType   string // release, available_balance, ...
	Gross        float64
	MPFee        float64
	FinancingFee float64
	ShippingFee  float64
	NetCredit    float64
	NetDebit     float64
}

// Net is the net cash effect of the release line.
func (r ReleaseRow) Net() float64 {
	return r.NetCredit - r.NetDebit
}

// Commission is the combined marketplace + financing fee of the release line.
func (r ReleaseRow) Commission() float64 {
	return r.MPFee + r.FinancingFee
}

// StatementRow is one line of the account statement, the source of truth for
// cash movements.
type StatementRow struct {
	OpID      string
	Date      string // dd/mm/yyyy
	Type      string // transaction type label, free text
	NetAmount float64
}

// WithdrawalRow is one line of the optional withdrawals report. It is accepted
// for completeness; withdrawals are cash movements already visible in the
// statement and produce no ledger entries.
type WithdrawalRow struct {
	OpID   string
	Date   string
	Amount float64
}
