package reconciliation

import (
	"strings"

	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/domain"
)

// Release description types that may occur more than once per operation and
// are accumulated as lists. "payment" stays a scalar slot.
const (
	descPayment = "payment"
	descRefund  = "refund"
)

// Index is the cross-reference lookup built once per run from the four
// auxiliary reports. Every classification rule reads from it; nothing writes
// to it after BuildIndex returns.
type Index struct {
	Origin         map[string]domain.Origin
	Sales          map[string]domain.SalesRow
	PostSaleReason map[string]string
	Payments       map[string]domain.ReleaseRow   // scalar "payment" record per operation
	Refunds        map[string][]domain.ReleaseRow // accumulated "refund" records
	Disputes       map[string][]domain.ReleaseRow // chargeback / mediation / dispute records
	Released       map[string]bool                // operation has any release-detail line
	ReleaseDate    map[string]string              // first payment date per operation
	PureCommission map[string]float64             // settlement fee minus shipping, per operation
	CancelDate     map[string]string              // first cancellation-family date per operation
}

// BuildIndex scans each auxiliary report once. Rows missing their required
// fields are skipped; enrichment is best-effort and never fails the build.
func BuildIndex(in *Inputs, log *zap.Logger) *Index {
	idx := &Index{
		Origin:         make(map[string]domain.Origin),
		Sales:          make(map[string]domain.SalesRow),
		PostSaleReason: make(map[string]string),
		Payments:       make(map[string]domain.ReleaseRow),
		Refunds:        make(map[string][]domain.ReleaseRow),
		Disputes:       make(map[string][]domain.ReleaseRow),
		Released:       make(map[string]bool),
		ReleaseDate:    make(map[string]string),
		PureCommission: make(map[string]float64),
		CancelDate:     make(map[string]string),
	}

	for _, row := range in.Sales {
		if row.OpID == "" {
			continue
		}
		idx.Sales[row.OpID] = row
		// Marketplace order linkage wins over any settlement signal.
		if row.OrderID != "" {
			idx.Origin[row.OpID] = domain.OriginMarketplace
		}
	}

	for _, row := range in.PostSale {
		if row.OpID == "" || row.ReasonDetail == "" {
			continue
		}
		if _, ok := idx.PostSaleReason[row.OpID]; !ok {
			idx.PostSaleReason[row.OpID] = row.ReasonDetail
		}
	}

	for _, row := range in.Settlement {
		if row.OpID == "" {
			continue
		}
		if _, ok := idx.Origin[row.OpID]; !ok && row.SubUnit != "" {
			if strings.Contains(strings.ToLower(row.SubUnit), "point") {
				idx.Origin[row.OpID] = domain.OriginCounter
			} else {
				idx.Origin[row.OpID] = domain.OriginOwnStore
			}
		}
		switch row.Type {
		case "SETTLEMENT":
			idx.PureCommission[row.OpID] = row.FeeAmount - row.ShippingFee
		case "CHARGEBACK", "REFUND", "CANCELLATION", "DISPUTE":
			if _, ok := idx.CancelDate[row.OpID]; !ok && row.Date != "" {
				idx.CancelDate[row.OpID] = row.Date
			}
		}
	}

	skipped := 0
	for _, row := range in.Releases {
		// Available-balance pseudo-rows summarize the account, not an
		// operation.
		if row.RecordType == "available_balance" {
			continue
		}
		if row.OpID == "" {
			skipped++
			continue
		}
		idx.Released[row.OpID] = true

		switch strings.ToLower(row.Description) {
		case descPayment:
			if _, ok := idx.ReleaseDate[row.OpID]; !ok && row.Date != "" {
				idx.ReleaseDate[row.OpID] = row.Date
			}
			idx.Payments[row.OpID] = row
		case descRefund:
			idx.Refunds[row.OpID] = append(idx.Refunds[row.OpID], row)
		default:
			idx.Disputes[row.OpID] = append(idx.Disputes[row.OpID], row)
		}
	}
	if skipped > 0 {
		log.Debug("release rows without operation id skipped", zap.Int("rows", skipped))
	}

	return idx
}

// OriginOf returns the classified origin of an operation, defaulting to the
// own store.
func (idx *Index) OriginOf(opID string) domain.Origin {
	if o, ok := idx.Origin[opID]; ok {
		return o
	}
	return domain.OriginOwnStore
}

// OriginCounts breaks down classified operations per origin channel.
func (idx *Index) OriginCounts() map[domain.Origin]int {
	counts := map[domain.Origin]int{
		domain.OriginMarketplace: 0,
		domain.OriginOwnStore:    0,
		domain.OriginCounter:     0,
	}
	for _, o := range idx.Origin {
		counts[o]++
	}
	return counts
}
