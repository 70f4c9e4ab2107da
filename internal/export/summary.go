package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/netair/conciliador/internal/domain"
)

// WriteSummaryXLSX writes a workbook with entries grouped by (payment date,
// category), one aggregated row per group, ordered by payment date. Group
// sums that cancel out to zero are dropped like any other zero row.
func WriteSummaryXLSX(w io.Writer, entries []domain.LedgerEntry) (bool, error) {
	type groupKey struct {
		paymentDate string
		category    string
	}
	type group struct {
		key     groupKey
		first   domain.LedgerEntry
		total   decimal.Decimal
		members int
	}

	groups := make(map[groupKey]*group)
	var order []groupKey
	for _, e := range entries {
		amount := decimal.NewFromFloat(e.Amount).Round(2)
		if amount.IsZero() {
			continue
		}
		k := groupKey{paymentDate: e.PaymentDate, category: e.Category}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k, first: e}
			groups[k] = g
			order = append(order, k)
		}
		g.total = g.total.Add(amount)
		g.members++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].paymentDate != order[j].paymentDate {
			return order[i].paymentDate < order[j].paymentDate
		}
		return order[i].category < order[j].category
	})

	rows := make([][]string, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.total.IsZero() {
			continue
		}
		rows = append(rows, []string{
			g.first.AccrualDate,
			g.first.DueDate,
			k.paymentDate,
			g.total.StringFixed(2),
			k.category,
			fmt.Sprintf("Resumo %d transações", g.members),
			domain.CounterpartyName,
			domain.CounterpartyTaxID,
			g.first.CostCenter,
			fmt.Sprintf("%d lançamentos agrupados", g.members),
		})
	}

	return writeWorkbook(w, rows)
}
