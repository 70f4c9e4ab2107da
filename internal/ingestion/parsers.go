package ingestion

import (
	"fmt"

	"github.com/netair/conciliador/internal/domain"
	"github.com/netair/conciliador/internal/normalize"
)

// Column names as emitted by the payment platform. The settlement, release
// and statement reports use machine headers; the sales and post-sale reports
// use the localized human headers.
const (
	colSourceID       = "SOURCE_ID"
	colTxnType        = "TRANSACTION_TYPE"
	colTxnDate        = "TRANSACTION_DATE"
	colTxnAmount      = "TRANSACTION_AMOUNT"
	colRealAmount     = "REAL_AMOUNT"
	colFeeAmount      = "FEE_AMOUNT"
	colShippingFee    = "SHIPPING_FEE_AMOUNT"
	colMoneyRelease   = "MONEY_RELEASE_DATE"
	colSubUnit        = "SUB_UNIT"
	colExternalRef    = "EXTERNAL_REFERENCE"
	colOrderID        = "ORDER_ID"
	colDate           = "DATE"
	colDescription    = "DESCRIPTION"
	colRecordType     = "RECORD_TYPE"
	colGrossAmount    = "GROSS_AMOUNT"
	colMPFee          = "MP_FEE_AMOUNT"
	colFinancingFee   = "FINANCING_FEE_AMOUNT"
	colNetCredit      = "NET_CREDIT_AMOUNT"
	colNetDebit       = "NET_DEBIT_AMOUNT"
	colReferenceID    = "REFERENCE_ID"
	colReleaseDate    = "RELEASE_DATE"
	colTxnNetAmount   = "TRANSACTION_NET_AMOUNT"
	colSalesOpID      = "Número da transação do Mercado Pago (operation_id)"
	colSalesReason    = "Descrição da operação (reason)"
	colSalesProduct   = "Valor do produto (transaction_amount)"
	colSalesShipping  = "Frete (shipping_cost)"
	colSalesShipment  = "Status do envio (shipment_status)"
	colSalesCreated   = "Data da compra (date_created)"
	colSalesReleased  = "Data de liberação do dinheiro (date_released)"
	colSalesOrderID   = "Número da venda no Mercado Livre (order_id)"
	colPostSaleOpID   = "ID da transação (operation_id)"
	colPostSaleReason = "Motivo detalhado (reason_detail)"
)

// ParseSettlement types the settlement ("dinheiro em conta") report.
func ParseSettlement(t *Table) ([]domain.SettlementRow, error) {
	if !t.Has(colSourceID) || !t.Has(colTxnType) {
		return nil, fmt.Errorf("settlement: %w", ErrMissingColumns)
	}
	rows := make([]domain.SettlementRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.SettlementRow{
			OpID:           normalize.ID(t.Get(raw, colSourceID)),
			Type:           t.Get(raw, colTxnType),
			Date:           normalize.Date(t.Get(raw, colTxnDate)),
			MoneyReleaseAt: normalize.Date(t.Get(raw, colMoneyRelease)),
			Amount:         normalize.Float(t.Get(raw, colTxnAmount), 0),
			RealAmount:     normalize.Float(t.Get(raw, colRealAmount), 0),
			FeeAmount:      normalize.Float(t.Get(raw, colFeeAmount), 0),
			ShippingFee:    normalize.Float(t.Get(raw, colShippingFee), 0),
			SubUnit:        t.Get(raw, colSubUnit),
			ExternalRef:    normalize.ID(t.Get(raw, colExternalRef)),
			OrderID:        normalize.ID(t.Get(raw, colOrderID)),
		})
	}
	return rows, nil
}

// ParseSales types the sales/collection report.
func ParseSales(t *Table) ([]domain.SalesRow, error) {
	if !t.Has(colSalesOpID) {
		return nil, fmt.Errorf("sales: %w", ErrMissingColumns)
	}
	rows := make([]domain.SalesRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.SalesRow{
			OpID:           normalize.ID(t.Get(raw, colSalesOpID)),
			Reason:         t.Get(raw, colSalesReason),
			ProductValue:   normalize.Float(t.Get(raw, colSalesProduct), 0),
			ShippingCost:   normalize.Float(t.Get(raw, colSalesShipping), 0),
			ShipmentStatus: t.Get(raw, colSalesShipment),
			OrderID:        normalize.ID(t.Get(raw, colSalesOrderID)),
			CreatedAt:      normalize.Date(t.Get(raw, colSalesCreated)),
			ReleasedAt:     normalize.Date(t.Get(raw, colSalesReleased)),
		})
	}
	return rows, nil
}

// ParsePostSale types the post-sale/after-collection report.
func ParsePostSale(t *Table) ([]domain.PostSaleRow, error) {
	if !t.Has(colPostSaleOpID) {
		return nil, fmt.Errorf("post-sale: %w", ErrMissingColumns)
	}
	rows := make([]domain.PostSaleRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.PostSaleRow{
			OpID:         normalize.ID(t.Get(raw, colPostSaleOpID)),
			ReasonDetail: t.Get(raw, colPostSaleReason),
		})
	}
	return rows, nil
}

// ParseReleases types the reserve-release detail report.
func ParseReleases(t *Table) ([]domain.ReleaseRow, error) {
	if !t.HasAny(colRecordType, colSourceID) {
		return nil, fmt.Errorf("releases: %w", ErrMissingColumns)
	}
	rows := make([]domain.ReleaseRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.ReleaseRow{
			OpID:         normalize.ID(t.Get(raw, colSourceID)),
			Date:         normalize.Date(t.Get(raw, colDate)),
			Description:  t.Get(raw, colDescription),
			RecordType:   t.Get(raw, colRecordType),
			Gross:        normalize.Float(t.Get(raw, colGrossAmount), 0),
			MPFee:        normalize.Float(t.Get(raw, colMPFee), 0),
			FinancingFee: normalize.Float(t.Get(raw, colFinancingFee), 0),
			ShippingFee:  normalize.Float(t.Get(raw, colShippingFee), 0),
			NetCredit:    normalize.Float(t.Get(raw, colNetCredit), 0),
			NetDebit:     normalize.Float(t.Get(raw, colNetDebit), 0),
		})
	}
	return rows, nil
}

// ParseStatement types the account statement. Statement amounts arrive in
// Brazilian locale format and go through the locale parser.
func ParseStatement(t *Table) ([]domain.StatementRow, error) {
	if !t.Has(colTxnNetAmount) || !t.Has(colTxnType) {
		return nil, fmt.Errorf("statement: %w", ErrMissingColumns)
	}
	rows := make([]domain.StatementRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.StatementRow{
			OpID:      normalize.ID(t.Get(raw, colReferenceID)),
			Date:      normalize.Date(t.Get(raw, colReleaseDate)),
			Type:      t.Get(raw, colTxnType),
			NetAmount: normalize.LocaleFloat(t.Get(raw, colTxnNetAmount)),
		})
	}
	return rows, nil
}

// ParseWithdrawals types the optional withdrawals report. It is best-effort:
// an unrecognized shape yields an empty slice, never an error.
func ParseWithdrawals(t *Table) []domain.WithdrawalRow {
	if t == nil || !t.HasAny(colSourceID, colReferenceID) {
		return nil
	}
	idCol := colSourceID
	if !t.Has(idCol) {
		idCol = colReferenceID
	}
	rows := make([]domain.WithdrawalRow, 0, len(t.Rows()))
	for _, raw := range t.Rows() {
		rows = append(rows, domain.WithdrawalRow{
			OpID:   normalize.ID(t.Get(raw, idCol)),
			Date:   normalize.Date(t.Get(raw, colDate)),
			Amount: normalize.Float(t.Get(raw, colTxnAmount), 0),
		})
	}
	return rows
}
