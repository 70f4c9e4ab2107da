// Command generate writes a coherent synthetic set of marketplace reports
// into testdata/ for local runs:
//
//	go run ./testdata/generate
//	curl -F dinheiro=@testdata/dinheiro.csv -F vendas=@testdata/vendas.csv \
//	     -F pos_venda=@testdata/pos_venda.csv -F liberacoes=@testdata/liberacoes.csv \
//	     -F extrato=@testdata/extrato.csv http://localhost:1909/conciliar -o out.zip
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	startDate := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	type op struct {
		id          string
		orderID     string // empty for own-store sales
		subUnit     string
		product     float64
		shipping    float64 // negative: seller pays
		fee         float64
		released    bool
		refunded    bool
		releaseDate time.Time
		saleDate    time.Time
	}

	var ops []op
	for i := 1; i <= 40; i++ {
		saleDay := startDate.AddDate(0, 0, rng.Intn(10))
		product := math.Round((30+rng.Float64()*470)*100) / 100
		fee := math.Round(product*0.13*100) / 100

		o := op{
			id:          fmt.Sprintf("9%09d", 100000000+i),
			product:     product,
			fee:         fee,
			saleDate:    saleDay,
			releaseDate: saleDay.AddDate(0, 0, 14),
			released:    rng.Float64() < 0.7,
			refunded:    rng.Float64() < 0.1,
		}
		switch {
		case rng.Float64() < 0.6:
			o.orderID = fmt.Sprintf("20000%05d", i)
		case rng.Float64() < 0.5:
			o.subUnit = "point_pro"
		default:
			o.subUnit = "online"
		}
		if rng.Float64() < 0.3 {
			o.shipping = -math.Round((15+rng.Float64()*25)*100) / 100
		}
		ops = append(ops, o)
	}

	writeCSV(baseDir, "vendas.csv", ',', [][]string{{
		"Número da transação do Mercado Pago (operation_id)",
		"Descrição da operação (reason)",
		"Valor do produto (transaction_amount)",
		"Frete (shipping_cost)",
		"Status do envio (shipment_status)",
		"Data da compra (date_created)",
		"Data de liberação do dinheiro (date_released)",
		"Número da venda no Mercado Livre (order_id)",
	}}, func(add func([]string)) {
		for _, o := range ops {
			add([]string{
				o.id, "Venda de produto",
				fmt.Sprintf("%.2f", o.product),
				fmt.Sprintf("%.2f", o.shipping),
				"delivered",
				o.saleDate.Format("2006-01-02"),
				o.releaseDate.Format("2006-01-02"),
				o.orderID,
			})
		}
	})

	writeCSV(baseDir, "pos_venda.csv", ',', [][]string{{
		"ID da transação (operation_id)",
		"Motivo detalhado (reason_detail)",
	}}, func(add func([]string)) {
		for _, o := range ops {
			if o.refunded {
				add([]string{o.id, "Produto com defeito"})
			}
		}
	})

	writeCSV(baseDir, "dinheiro.csv", ',', [][]string{{
		"SOURCE_ID", "TRANSACTION_TYPE", "TRANSACTION_DATE", "MONEY_RELEASE_DATE",
		"TRANSACTION_AMOUNT", "REAL_AMOUNT", "FEE_AMOUNT", "SHIPPING_FEE_AMOUNT",
		"SUB_UNIT", "EXTERNAL_REFERENCE", "ORDER_ID",
	}}, func(add func([]string)) {
		for _, o := range ops {
			net := o.product - o.fee
			add([]string{
				o.id, "SETTLEMENT",
				o.saleDate.Format("2006-01-02"),
				o.releaseDate.Format("2006-01-02"),
				fmt.Sprintf("%.2f", o.product),
				fmt.Sprintf("%.2f", net),
				fmt.Sprintf("%.2f", -o.fee),
				fmt.Sprintf("%.2f", o.shipping),
				o.subUnit, o.orderID, o.orderID,
			})
			if o.refunded {
				add([]string{
					o.id, "REFUND",
					o.releaseDate.Format("2006-01-02"), "",
					fmt.Sprintf("%.2f", -o.product),
					fmt.Sprintf("%.2f", -(o.product - o.fee)),
					"0.00", "0.00", o.subUnit, o.orderID, o.orderID,
				})
			}
		}
	})

	writeCSV(baseDir, "liberacoes.csv", ',', [][]string{{
		"SOURCE_ID", "DATE", "DESCRIPTION", "RECORD_TYPE", "GROSS_AMOUNT",
		"MP_FEE_AMOUNT", "FINANCING_FEE_AMOUNT", "SHIPPING_FEE_AMOUNT",
		"NET_CREDIT_AMOUNT", "NET_DEBIT_AMOUNT",
	}}, func(add func([]string)) {
		add([]string{"", "", "", "available_balance", "0", "0", "0", "0", "0", "0"})
		for _, o := range ops {
			if !o.released {
				continue
			}
			net := o.product - o.fee
			add([]string{
				o.id, o.releaseDate.Format("2006-01-02"), "payment", "release",
				fmt.Sprintf("%.2f", o.product),
				fmt.Sprintf("%.2f", -o.fee), "0.00", "0.00",
				fmt.Sprintf("%.2f", net), "0.00",
			})
			if o.refunded {
				add([]string{
					o.id, o.releaseDate.AddDate(0, 0, 2).Format("2006-01-02"),
					"refund", "release",
					fmt.Sprintf("%.2f", -o.product),
					fmt.Sprintf("%.2f", o.fee), "0.00", "0.00",
					"0.00", fmt.Sprintf("%.2f", o.product-o.fee),
				})
			}
		}
	})

	// The statement carries a three-line preamble and locale amounts, like
	// the real download.
	writeRawCSV(baseDir, "extrato.csv", func(add func(string)) {
		add("Extrato de conta")
		add("Período;04/03/2024 a 31/03/2024")
		add("")
		add("RELEASE_DATE;REFERENCE_ID;TRANSACTION_TYPE;TRANSACTION_NET_AMOUNT")
		for _, o := range ops {
			if !o.released {
				continue
			}
			net := o.product - o.fee
			add(fmt.Sprintf("%s;%s;Liberação de dinheiro;%s",
				o.releaseDate.Format("02/01/2006"), o.id, locale(net)))
			if o.refunded {
				add(fmt.Sprintf("%s;%s;Reembolso;%s",
					o.releaseDate.AddDate(0, 0, 2).Format("02/01/2006"), o.id, locale(-net)))
			}
		}
		add(fmt.Sprintf("%s;;Transferência Pix Recebida;%s",
			startDate.AddDate(0, 0, 5).Format("02/01/2006"), locale(350)))
		add(fmt.Sprintf("%s;;Pagamento de contas;%s",
			startDate.AddDate(0, 0, 6).Format("02/01/2006"), locale(-120.40)))
		add(fmt.Sprintf("%s;;Transferência para conta Netparts;%s",
			startDate.AddDate(0, 0, 8).Format("02/01/2006"), locale(-2000)))
	})

	fmt.Printf("Wrote fixtures to %s\n", baseDir)
}

func locale(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	return strings.ReplaceAll(s, ".", ",")
}

func writeCSV(dir, name string, comma rune, header [][]string, fill func(add func([]string))) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Comma = comma
	for _, h := range header {
		if err := w.Write(h); err != nil {
			panic(err)
		}
	}
	fill(func(row []string) {
		if err := w.Write(row); err != nil {
			panic(err)
		}
	})
	w.Flush()
	if err := w.Error(); err != nil {
		panic(err)
	}
}

func writeRawCSV(dir, name string, fill func(add func(string))) {
	var b strings.Builder
	fill(func(line string) {
		b.WriteString(line)
		b.WriteString("\n")
	})
	if err := os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0o644); err != nil {
		panic(err)
	}
}

func findTestdataDir() string {
	for _, c := range []string{"testdata", filepath.Join("..", "..", "testdata")} {
		if st, err := os.Stat(c); err == nil && st.IsDir() {
			return c
		}
	}
	return "."
}
