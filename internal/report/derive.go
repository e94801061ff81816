package report

import (
	"github.com/shopspring/decimal"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

// Totals is every figure the closing screen and the shareable summary need.
// It is derived on demand from a report revision — there is no cached or
// incremental state, so the same revision always derives the same totals.
type Totals struct {
	TotalVouchers  decimal.Decimal `json:"totalVouchers"`
	TotalMisc      decimal.Decimal `json:"totalMisc"`
	TotalFinancial decimal.Decimal `json:"totalFinancial"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	ItemCount      int             `json:"itemCount"`
	GrossTotal     decimal.Decimal `json:"grossTotal"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	// ProjectedCashBalance is openingBalance + totalFinancial − totalExpenses.
	// The formula treats every financial channel as drawer cash — an
	// approximation inherited from the original tool, kept for snapshot and
	// summary compatibility.
	ProjectedCashBalance decimal.Decimal `json:"projectedCashBalance"`
}

// Derive folds a report revision into its totals. Total function: no input
// makes it fail — unresolved company ids simply price at zero.
func Derive(r model.DailyReport, cat *model.Catalog) Totals {
	t := Totals{
		TotalVouchers:  decimal.Zero,
		TotalMisc:      decimal.Zero,
		TotalFinancial: decimal.Zero,
		TotalExpenses:  decimal.Zero,
	}

	for _, v := range r.VoucherEntries {
		price, _ := cat.PriceFor(v.CompanyID)
		t.TotalVouchers = t.TotalVouchers.Add(price.Mul(decimal.NewFromInt(int64(v.Quantity))))
		t.ItemCount += v.Quantity
	}

	for _, m := range r.MiscEntries {
		// Trusts the stored total; the reducer keeps it in sync.
		t.TotalMisc = t.TotalMisc.Add(m.Total)
		t.ItemCount += m.Quantity
	}

	// Fixed iteration order keeps decimal results bit-identical across calls.
	for _, ch := range model.Channels() {
		amt := r.Channels[ch]
		t.TotalFinancial = t.TotalFinancial.Add(amt.Value)
		t.ItemCount += amt.Quantity
	}

	for _, e := range r.Expenses {
		t.TotalExpenses = t.TotalExpenses.Add(e.Value)
	}

	t.GrossTotal = t.TotalVouchers.Add(t.TotalFinancial).Add(t.TotalMisc)
	t.GrandTotal = t.GrossTotal.Sub(t.TotalExpenses)
	t.ProjectedCashBalance = r.OpeningBalance.Add(t.TotalFinancial).Sub(t.TotalExpenses)
	return t
}
