package reconciliation

import (
	"fmt"
	"math"
	"strings"

	"github.com/netair/conciliador/internal/domain"
	"github.com/netair/conciliador/internal/normalize"
)

// forecast walks the settlement report after the statement pass and emits
// accrual-basis entries for operations the release-detail report has not
// seen yet (money still in transit).
func (r *run) forecast(rows []domain.SettlementRow) {
	for _, row := range rows {
		if r.idx.Released[row.OpID] {
			// Already reconciled through the statement.
			continue
		}

		accrual := row.Date
		payDate := row.MoneyReleaseAt
		sales, hasSale := r.idx.Sales[row.OpID]
		if hasSale {
			if sales.CreatedAt != "" {
				accrual = sales.CreatedAt
			}
			if payDate == "" {
				payDate = sales.ReleasedAt
			}
		}
		desc := forecastDescription(row)

		switch {
		case row.Type == "SETTLEMENT":
			r.forecastSettlement(row, sales, hasSale, accrual, payDate, desc)
		case row.Type == "CHARGEBACK" || row.Type == "REFUND" ||
			row.Type == "CANCELLATION" || row.Type == "DISPUTE":
			// Returns accrue at the cancellation, not at the sale.
			cancelAt := r.idx.CancelDate[row.OpID]
			if cancelAt == "" {
				cancelAt = accrual
			}
			r.result.Forecast = append(r.result.Forecast, domain.LedgerEntry{
				OperationID: row.OpID,
				AccrualDate: cancelAt,
				PaymentDate: cancelAt,
				DueDate:     cancelAt,
				Category:    r.engine.chart.Label(domain.CatReturns),
				Amount:      normalize.Round2(-math.Abs(row.Amount)),
				CostCenter:  r.costCenter,
				Description: desc,
				Notes:       r.returnNotes(row.OpID, row.Type+" (PREVISÃO)"),
			})
		case strings.Contains(strings.ToUpper(row.Type), "PAYOUT"),
			strings.Contains(strings.ToUpper(row.Type), "RETIRADA"),
			row.Type == "MONEY_TRANSFER":
			// Cash withdrawals show up in the statement; nothing to accrue.
		default:
			r.result.Forecast = append(r.result.Forecast, domain.LedgerEntry{
				OperationID: row.OpID,
				AccrualDate: accrual,
				PaymentDate: accrual,
				DueDate:     accrual,
				Category:    r.engine.chart.Label(domain.CatOther),
				Amount:      normalize.Round2(row.RealAmount),
				CostCenter:  "",
				Description: desc,
				Notes:       "Verificar - " + truncate(row.Type, 50),
			})
		}
	}
}

// forecastSettlement emits the revenue/commission/freight forecast for one
// settled-but-unreleased sale.
func (r *run) forecastSettlement(row domain.SettlementRow, sales domain.SalesRow, hasSale bool, accrual, payDate, desc string) {
	revenue := row.Amount
	freight := row.ShippingFee
	if hasSale {
		revenue = sales.ProductValue
		freight = sales.ShippingCost
	}

	if revenue < 0 {
		// Not a sale: money spent through the platform.
		billAccrual := payDate
		if billAccrual == "" {
			billAccrual = accrual
		}
		r.billPayment(domain.LedgerEntry{
			OperationID: row.OpID,
			AccrualDate: billAccrual,
			PaymentDate: payDate,
			DueDate:     payDate,
			Category:    r.engine.chart.Label(domain.CatBillPayment),
			Amount:      normalize.Round2(revenue),
			CostCenter:  r.costCenter,
			Description: desc,
			Notes:       fmt.Sprintf("%s - Pagamento via Mercado Pago", row.OpID),
		})
		return
	}

	forecast := func(cat domain.Category, amount float64, notes string) {
		r.result.Forecast = append(r.result.Forecast, domain.LedgerEntry{
			OperationID: row.OpID,
			AccrualDate: accrual,
			PaymentDate: payDate,
			DueDate:     payDate,
			Category:    r.engine.chart.Label(cat),
			Amount:      normalize.Round2(amount),
			CostCenter:  r.costCenter,
			Description: desc,
			Notes:       notes,
		})
	}

	forecast(r.revenueCategory(row.OpID), revenue, "Receita de venda (PREVISÃO)")

	// Freight is an expense: force the sign negative.
	if freight > 0 {
		freight = -freight
	}

	commission := normalize.Round2(revenue + freight - row.RealAmount)
	if row.RealAmount == 0 {
		// Settlement rows without a usable net fall back to the fee columns.
		if pure, ok := r.idx.PureCommission[row.OpID]; ok {
			commission = normalize.Round2(pure)
		}
	}
	if math.Abs(commission) > centTolerance {
		forecast(domain.CatCommission, -math.Abs(commission), "Tarifa (PREVISÃO)")
	}

	if freight != 0 {
		forecast(domain.CatFreightOut, freight, "Frete (PREVISÃO)")
	}
}

// forecastDescription prefers the marketplace order reference over the bare
// operation id.
func forecastDescription(row domain.SettlementRow) string {
	ref := row.ExternalRef
	if ref == "" {
		ref = row.OrderID
	}
	if ref != "" {
		return fmt.Sprintf("%s - Pedido %s", row.OpID, ref)
	}
	return fmt.Sprintf("%s - Op %s", row.OpID, row.OpID)
}
