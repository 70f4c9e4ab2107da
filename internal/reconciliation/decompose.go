package reconciliation

import (
	"math"

	"go.uber.org/zap"

	"github.com/netair/conciliador/internal/domain"
	"github.com/netair/conciliador/internal/normalize"
)

// decomposePayment splits a money-release row into revenue, commission and
// freight lines using the operation's "payment" release-detail record. When
// no record exists (or, for operations recurring in the statement, no record
// matches the row's amount), the raw statement amount goes out as revenue.
func (r *run) decomposePayment(sr stmtRow) {
	if sr.Date == "" {
		// Statement rows occasionally miss the release date; the
		// release-detail record carries it.
		sr.Date = r.idx.ReleaseDate[sr.OpID]
	}

	pr, ok := r.idx.Payments[sr.OpID]
	if ok && r.multi[sr.OpID] && math.Abs(pr.Net()-sr.NetAmount) > reconcileTolerance {
		// Ambiguous operation: this statement row does not carry the payment
		// release, so do not attribute the record to it.
		ok = false
	}
	if !ok {
		r.confirm(r.entry(sr, r.revenueCategory(sr.OpID), sr.NetAmount, "Liberação de venda"))
		return
	}

	gross := pr.Gross
	commission := pr.Commission()
	shipping := pr.ShippingFee

	// Buyer-paid shipping is a pass-through baked into the gross: net it out
	// of revenue and record no freight. When the seller pays (negative
	// shipping cost on the sale), revenue is the full gross and the release
	// shipping fee is a real expense.
	var revenue, freight float64
	if sales, known := r.idx.Sales[sr.OpID]; known && sales.ShippingCost < -centTolerance {
		revenue = gross
		freight = math.Abs(shipping)
	} else {
		revenue = gross + shipping
		freight = 0
	}

	var emitted float64
	if math.Abs(revenue) > centTolerance {
		amount := math.Abs(revenue)
		r.confirm(r.entry(sr, r.revenueCategory(sr.OpID), amount, "Receita de venda"))
		emitted += normalize.Round2(amount)
	}
	if math.Abs(commission) > centTolerance {
		amount := -math.Abs(commission)
		r.confirm(r.entry(sr, domain.CatCommission, amount, "Tarifa Mercado Livre"))
		emitted += normalize.Round2(amount)
	}
	if freight != 0 {
		amount := -math.Abs(freight)
		r.confirm(r.entry(sr, domain.CatFreightOut, amount, "Frete de envio"))
		emitted += normalize.Round2(amount)
	}

	// Refund records accumulated for the same operation ride along only in
	// the single-occurrence path; recurring operations get their refund rows
	// classified independently to avoid double counting.
	var refundNet float64
	if !r.multi[sr.OpID] {
		refundNet = r.emitAttachedRefunds(sr)
	}

	if diff := emitted + refundNet - sr.NetAmount; math.Abs(diff) > reconcileTolerance {
		r.engine.log.Warn("payment decomposition does not reconcile with statement",
			zap.String("operation_id", sr.OpID),
			zap.Float64("statement", sr.NetAmount),
			zap.Float64("decomposed", normalize.Round2(emitted+refundNet)),
			zap.Float64("difference", normalize.Round2(diff)),
		)
	}
}

// emitAttachedRefunds sums the operation's refund release records into
// partial-return, fee-reversal and freight-reversal lines. Returns the summed
// refund net amount for the reconciliation check.
func (r *run) emitAttachedRefunds(sr stmtRow) float64 {
	refunds := r.idx.Refunds[sr.OpID]
	if len(refunds) == 0 {
		return 0
	}

	var gross, fees, shipping, net float64
	for _, ref := range refunds {
		gross += ref.Gross
		fees += ref.Commission()
		shipping += ref.ShippingFee
		net += ref.Net()
	}

	if math.Abs(gross) > centTolerance {
		r.confirm(r.entry(sr, domain.CatReturns, gross, r.returnNotes(sr.OpID, "Devolução parcial")))
	}
	if fees > centTolerance {
		r.confirm(r.entry(sr, domain.CatFeeRefund, fees, "Estorno de taxas"))
	}
	if shipping > centTolerance {
		r.confirm(r.entry(sr, domain.CatFreightRefund, shipping, "Estorno de frete"))
	}
	return net
}

// decomposeRefund classifies a refund-labeled statement row from the
// operation's refund release records, falling back to its dispute records
// (chargebacks and mediations describe the same cash movement). Multiple
// records are summed; for operations recurring in the statement the single
// record nearest the row's net amount is used instead. Without any record the
// sign of the amount decides.
func (r *run) decomposeRefund(sr stmtRow) {
	refunds := r.idx.Refunds[sr.OpID]
	if len(refunds) == 0 {
		refunds = r.idx.Disputes[sr.OpID]
	}
	if r.multi[sr.OpID] {
		refunds = nearestByNet(refunds, sr.NetAmount)
	}
	if len(refunds) == 0 {
		if sr.NetAmount > 0 {
			r.confirm(r.entry(sr, domain.CatFeeRefund, sr.NetAmount, "Estorno de Taxas"))
			return
		}
		r.confirm(r.entry(sr, domain.CatReturns, sr.NetAmount, r.returnNotes(sr.OpID, "Reembolso")))
		return
	}

	var gross, fees, shipping float64
	for _, ref := range refunds {
		gross += ref.Gross
		fees += ref.Commission()
		shipping += ref.ShippingFee
	}

	switch {
	case gross < -centTolerance:
		r.confirm(r.entry(sr, domain.CatReturns, gross, r.returnNotes(sr.OpID, "Devolução de produto")))
	case gross > centTolerance:
		// An earlier return coming back after a won dispute.
		r.confirm(r.entry(sr, domain.CatFeeRefund, gross, "Estorno de Devolução (disputa)"))
	}

	switch {
	case fees > centTolerance:
		r.confirm(r.entry(sr, domain.CatFeeRefund, fees, "Estorno Taxa Mercado Livre"))
	case fees < -centTolerance:
		r.confirm(r.entry(sr, domain.CatCommission, fees, "Taxa sobre reembolso"))
	}

	switch {
	case shipping > centTolerance:
		r.confirm(r.entry(sr, domain.CatFreightRefund, shipping, "Estorno de Frete"))
	case shipping < -centTolerance:
		r.confirm(r.entry(sr, domain.CatFreightReverse, shipping, "Logística reversa"))
	}
}

// nearestByNet picks the single release record whose net amount is closest to
// the statement amount, within the reconciliation tolerance. Empty when none
// is close enough.
func nearestByNet(records []domain.ReleaseRow, amount float64) []domain.ReleaseRow {
	bestDiff := math.MaxFloat64
	var best *domain.ReleaseRow
	for i := range records {
		diff := math.Abs(records[i].Net() - amount)
		if diff < bestDiff {
			bestDiff = diff
			best = &records[i]
		}
	}
	if best == nil || bestDiff > reconcileTolerance {
		return nil
	}
	return []domain.ReleaseRow{*best}
}
