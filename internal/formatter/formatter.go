// Package formatter renders the shareable closing summary. It is a pure
// presentation fold: every number comes in already derived, and the same
// inputs always produce the same bytes.
package formatter

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/report"
)

const (
	divider = "----------------------------------------"
	// Printed in place of an itemized block whose source list is empty.
	emptyPlaceholder = "— nenhum lançamento —"
)

// Format produces the fixed multi-section text block the cashier shares at
// end of day.
func Format(r model.DailyReport, t report.Totals, cat *model.Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "FECHAMENTO DIÁRIO — %s\n", r.Date)
	fmt.Fprintf(&b, "Itens vendidos: %d\n", t.ItemCount)
	b.WriteString(divider + "\n")

	fmt.Fprintf(&b, "CONVÊNIOS (R$ %s)\n", t.TotalVouchers.StringFixed(2))
	if len(r.VoucherEntries) == 0 {
		b.WriteString(emptyPlaceholder + "\n")
	}
	for _, v := range r.VoucherEntries {
		name, ok := cat.NameFor(v.CompanyID)
		if !ok {
			// Unresolved reference: print the raw id, priced at zero.
			name = v.CompanyID
		}
		price, _ := cat.PriceFor(v.CompanyID)
		line := price.Mul(decimalFromInt(v.Quantity))
		fmt.Fprintf(&b, "- %s x%d ....... R$ %s\n", name, v.Quantity, line.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nVENDAS AVULSAS (R$ %s)\n", t.TotalMisc.StringFixed(2))
	if len(r.MiscEntries) == 0 {
		b.WriteString(emptyPlaceholder + "\n")
	}
	for _, m := range r.MiscEntries {
		fmt.Fprintf(&b, "- %s x%d ....... R$ %s\n", m.Description, m.Quantity, m.Total.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nRECEBIMENTOS (R$ %s)\n", t.TotalFinancial.StringFixed(2))
	for _, ch := range model.Channels() {
		amt := r.Channels[ch]
		fmt.Fprintf(&b, "- %s: R$ %s (%d)\n", ch.Label(), amt.Value.StringFixed(2), amt.Quantity)
	}

	fmt.Fprintf(&b, "\nSAÍDAS (R$ %s)\n", t.TotalExpenses.StringFixed(2))
	if len(r.Expenses) == 0 {
		b.WriteString(emptyPlaceholder + "\n")
	}
	for _, e := range r.Expenses {
		fmt.Fprintf(&b, "- %s ....... R$ %s\n", e.Description, e.Value.StringFixed(2))
	}

	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Fundo de caixa: R$ %s\n", r.OpeningBalance.StringFixed(2))
	fmt.Fprintf(&b, "Total bruto:    R$ %s\n", t.GrossTotal.StringFixed(2))
	fmt.Fprintf(&b, "TOTAL GERAL:    R$ %s\n", t.GrandTotal.StringFixed(2))
	fmt.Fprintf(&b, "Saldo previsto: R$ %s\n", t.ProjectedCashBalance.StringFixed(2))

	return b.String()
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
