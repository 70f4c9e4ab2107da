package reconciliation

import (
	"strings"

	"github.com/netair/conciliador/internal/domain"
)

// statementRules is the ordered classification chain for statement rows.
// Order matters: several labels share substrings ("reembolso" appears inside
// "liberação de dinheiro cancelada" handling territory, "pagamento" inside
// "pagamento de contas"), so the first matching rule wins and the chain ends
// in an always-matching catch-all.
var statementRules = []statementRule{
	{
		name: "transfer",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "transfer")
		},
		apply: func(r *run, sr stmtRow) {
			pixReceived := strings.Contains(sr.label, "pix recebid")
			if pixReceived && sr.NetAmount > 0 && !r.isInternalAccount(sr.label) {
				// External PIX straight into the account is a sale outside
				// the marketplace flow.
				r.confirm(r.entry(sr, r.revenueCategory(sr.OpID), sr.NetAmount, "PIX recebido (venda)"))
				return
			}
			r.transfer(r.entry(sr, domain.CatTransfer, sr.NetAmount, truncate(sr.Type, 80)))
		},
	},
	{
		name: "cancelled-release",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "liberação de dinheiro cancelada") ||
				strings.Contains(sr.label, "liberacao de dinheiro cancelada")
		},
		apply: func(r *run, sr stmtRow) {
			if sr.NetAmount > 0 {
				r.confirm(r.entry(sr, domain.CatFeeRefund, sr.NetAmount, "Estorno Liberação Cancelada"))
				return
			}
			r.confirm(r.entry(sr, domain.CatReturns, sr.NetAmount, r.returnNotes(sr.OpID, "Liberação cancelada")))
		},
	},
	{
		name: "card-bill",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "pagamento de fatura") ||
				strings.Contains(sr.label, "fatura do cartão") ||
				strings.Contains(sr.label, "fatura do cartao")
		},
		apply: func(r *run, sr stmtRow) {
			r.transfer(r.entry(sr, domain.CatTransfer, sr.NetAmount, "Pagamento de fatura via plataforma"))
		},
	},
	{
		name: "money-release",
		match: func(r *run, sr stmtRow) bool {
			if strings.Contains(sr.label, "liberação de dinheiro") ||
				strings.Contains(sr.label, "liberacao de dinheiro") {
				return true
			}
			// A sale paid straight into the account still has its release
			// breakdown in the release-detail report. Only credits: debits on
			// the same operation are refunds and belong to the rules below.
			if sr.NetAmount < 0 {
				return false
			}
			_, ok := r.idx.Payments[sr.OpID]
			return ok
		},
		apply: func(r *run, sr stmtRow) {
			r.decomposePayment(sr)
		},
	},
	{
		name: "refund",
		match: func(_ *run, sr stmtRow) bool {
			return strings.HasPrefix(strings.TrimSpace(sr.label), "reembolso")
		},
		apply: func(r *run, sr stmtRow) {
			r.decomposeRefund(sr)
		},
	},
	{
		name: "held-funds",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "dinheiro retido")
		},
		apply: func(r *run, sr stmtRow) {
			if sr.NetAmount < 0 {
				r.confirm(r.entry(sr, domain.CatReturns, sr.NetAmount, r.returnNotes(sr.OpID, "Dinheiro retido (disputa)")))
				return
			}
			r.confirm(r.entry(sr, domain.CatFeeRefund, sr.NetAmount, "Dinheiro retido liberado (disputa)"))
		},
	},
	{
		name: "tax",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "difal") ||
				strings.Contains(sr.label, "imposto interestadual") ||
				strings.Contains(sr.label, "alíquota") ||
				strings.Contains(sr.label, "aliquota")
		},
		apply: func(r *run, sr stmtRow) {
			notes := "DIFAL"
			if strings.Contains(sr.label, "imposto interestadual") {
				notes = "Imposto Interestadual"
			}
			r.confirm(r.entry(sr, domain.CatDIFAL, sr.NetAmount, notes))
		},
	},
	{
		name: "bill-payment",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "pagamento de contas")
		},
		apply: func(r *run, sr stmtRow) {
			r.billPayment(r.entry(sr, domain.CatBillPayment, sr.NetAmount, "Pagamento de Conta via MP"))
		},
	},
	{
		name: "generic-payment",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "pagamento") || strings.Contains(sr.label, "qr")
		},
		apply: func(r *run, sr stmtRow) {
			if sr.NetAmount < 0 {
				r.billPayment(r.entry(sr, domain.CatBillPayment, sr.NetAmount, "Pagamento PIX enviado"))
				return
			}
			r.confirm(r.entry(sr, r.revenueCategory(sr.OpID), sr.NetAmount, "Pagamento PIX recebido"))
		},
	},
	{
		name: "inflow",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "entrada")
		},
		apply: func(r *run, sr stmtRow) {
			r.confirm(r.entry(sr, r.revenueCategory(sr.OpID), sr.NetAmount, "Entrada de dinheiro"))
		},
	},
	{
		name: "debit",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "débito") || strings.Contains(sr.label, "debito") ||
				strings.Contains(sr.label, "dívida") || strings.Contains(sr.label, "divida")
		},
		apply: func(r *run, sr stmtRow) {
			cat, notes := debitSubclass(sr.label)
			if cat == domain.CatReturns {
				notes = r.returnNotes(sr.OpID, notes)
			}
			r.confirm(r.entry(sr, cat, sr.NetAmount, notes))
		},
	},
	{
		name: "shipping-bonus",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "bônus") || strings.Contains(sr.label, "bonus")
		},
		apply: func(r *run, sr stmtRow) {
			r.confirm(r.entry(sr, domain.CatFreightRefund, sr.NetAmount, "Bônus de envio"))
		},
	},
	{
		name: "purchase",
		match: func(_ *run, sr stmtRow) bool {
			return strings.Contains(sr.label, "compra")
		},
		apply: func(r *run, sr stmtRow) {
			r.billPayment(r.entry(sr, domain.CatBillPayment, sr.NetAmount, "Compra Mercado Livre"))
		},
	},
	{
		name: "late-refund",
		match: func(_ *run, sr stmtRow) bool {
			// "reembolso" buried mid-label, missed by the prefix rule above.
			return strings.Contains(sr.label, "reembolso")
		},
		apply: func(r *run, sr stmtRow) {
			r.confirm(r.entry(sr, domain.CatReturns, sr.NetAmount, r.returnNotes(sr.OpID, "Reembolso")))
		},
	},
	{
		name:  "catch-all",
		match: func(_ *run, _ stmtRow) bool { return true },
		apply: func(r *run, sr stmtRow) {
			r.diagnose(sr)
		},
	},
}

type statementRule struct {
	name  string
	match func(r *run, sr stmtRow) bool
	apply func(r *run, sr stmtRow)
}

// debitSubclass picks the account for débito/dívida rows by secondary
// keyword.
func debitSubclass(label string) (domain.Category, string) {
	switch {
	case strings.Contains(label, "reclama"):
		return domain.CatReturns, "Débito Reclamação ML"
	case strings.Contains(label, "envio"):
		return domain.CatFreightOut, "Débito Envio ML"
	case strings.Contains(label, "aliquota"), strings.Contains(label, "alíquota"), strings.Contains(label, "difal"):
		return domain.CatDIFAL, "DIFAL via Débito"
	case strings.Contains(label, "imposto"):
		return domain.CatDIFAL, "Imposto Interestadual"
	case strings.Contains(label, "troca"):
		return domain.CatReturns, "Débito Troca Produto"
	case strings.Contains(label, "retido"):
		return domain.CatReturns, "Débito Dinheiro Retido"
	default:
		return domain.CatOther, "Débito/Dívida ML"
	}
}
