package reconciliation

import (
	"errors"
	"fmt"

	"github.com/netair/conciliador/internal/domain"
)

// Inputs holds the typed rows of every report one reconciliation run
// consumes. The first five are required; withdrawals are optional and carry
// no ledger effect.
type Inputs struct {
	Settlement  []domain.SettlementRow
	Sales       []domain.SalesRow
	PostSale    []domain.PostSaleRow
	Releases    []domain.ReleaseRow
	Statement   []domain.StatementRow
	Withdrawals []domain.WithdrawalRow
}

// ErrMissingReport signals that a required report was not supplied at all.
var ErrMissingReport = errors.New("required report is missing")

func (in *Inputs) validate() error {
	required := []struct {
		name string
		ok   bool
	}{
		{"settlement", in.Settlement != nil},
		{"sales", in.Sales != nil},
		{"post-sale", in.PostSale != nil},
		{"releases", in.Releases != nil},
		{"statement", in.Statement != nil},
	}
	for _, r := range required {
		if !r.ok {
			return fmt.Errorf("%s: %w", r.name, ErrMissingReport)
		}
	}
	return nil
}
