package domain

// Category identifies one account of the fixed chart of accounts. Every
// ledger entry carries the resolved label of exactly one of these.
type Category string

const (
	CatRevenueMarketplace Category = "RECEITA_ML"
	CatRevenueOwnStore    Category = "RECEITA_LOJA"
	CatRevenueCounter     Category = "RECEITA_BALCAO"
	CatCommission         Category = "COMISSAO"
	CatFreightOut         Category = "FRETE_ENVIO"
	CatFreightReverse     Category = "FRETE_REVERSO"
	CatReturns            Category = "DEVOLUCAO"
	CatTransfer           Category = "TRANSFERENCIA"
	CatBillPayment        Category = "PAGAMENTO_CONTA"
	CatFreightRefund      Category = "ESTORNO_FRETE"
	CatFeeRefund          Category = "ESTORNO_TAXA"
	CatDIFAL              Category = "DIFAL"
	CatOther              Category = "OUTROS"
)

// Chart maps category keys to the bookkeeping system's account labels. It is
// injected into the engine at construction and never mutated.
type Chart map[Category]string

// DefaultChart is the Conta Azul plan of accounts used for import.
func DefaultChart() Chart {
	return Chart{
		CatRevenueMarketplace: "1.1.1 MercadoLibre",
		CatRevenueOwnStore:    "1.1.2 Loja Própria (E-commerce)",
		CatRevenueCounter:     "1.1.5 Vendas Diretas/Balcão",
		CatCommission:         "2.8.2 Comissões de Marketplace",
		CatFreightOut:         "2.9.4 MercadoEnvios",
		CatFreightReverse:     "2.9.10 Logística Reversa",
		CatReturns:            "1.2.1 Devoluções e Cancelamentos",
		CatTransfer:           "Transferências",
		CatBillPayment:        "2.1.1 Compra de Mercadorias",
		CatFreightRefund:      "1.3.7 Estorno de Frete sobre Vendas",
		CatFeeRefund:          "1.3.4 Descontos e Estornos de Taxas e Tarifas",
		CatDIFAL:              "2.2.3 DIFAL (Diferencial de Alíquota)",
		CatOther:              "2.14.8 Despesas Eventuais",
	}
}

// Label resolves a category key. Unknown keys resolve to the catch-all
// account so the closed-set guarantee holds even on programmer error.
func (c Chart) Label(key Category) string {
	if label, ok := c[key]; ok {
		return label
	}
	return c[CatOther]
}

// Origin classifies where a sale originated.
type Origin string

const (
	OriginMarketplace Origin = "ML"
	OriginOwnStore    Origin = "LOJA"
	OriginCounter     Origin = "BALCAO"
)

// RevenueCategory picks the revenue account for a sale origin.
func RevenueCategory(o Origin) Category {
	switch o {
	case OriginMarketplace:
		return CatRevenueMarketplace
	case OriginCounter:
		return CatRevenueCounter
	default:
		return CatRevenueOwnStore
	}
}
