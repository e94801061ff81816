package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Channel is one of the six fixed financial-receipt categories.
// The set is closed: money only ever arrives through these six, and the
// persisted snapshot always carries all of them.
type Channel string

const (
	ChannelCreditCard  Channel = "creditCard"
	ChannelDebitCard   Channel = "debitCard"
	ChannelPixMachine  Channel = "pixMachine"
	ChannelPixPersonal Channel = "pixPersonal"
	ChannelCash        Channel = "cash"
	ChannelIfood       Channel = "ifood"
)

// Channels returns the closed channel set in display order.
func Channels() []Channel {
	return []Channel{
		ChannelCreditCard,
		ChannelDebitCard,
		ChannelPixMachine,
		ChannelPixPersonal,
		ChannelCash,
		ChannelIfood,
	}
}

func (ch Channel) Valid() bool {
	switch ch {
	case ChannelCreditCard, ChannelDebitCard, ChannelPixMachine,
		ChannelPixPersonal, ChannelCash, ChannelIfood:
		return true
	}
	return false
}

// Label returns the channel name as printed on the shareable summary.
func (ch Channel) Label() string {
	switch ch {
	case ChannelCreditCard:
		return "Cartão de Crédito"
	case ChannelDebitCard:
		return "Cartão de Débito"
	case ChannelPixMachine:
		return "Pix (Maquininha)"
	case ChannelPixPersonal:
		return "Pix (Direto)"
	case ChannelCash:
		return "Dinheiro"
	case ChannelIfood:
		return "iFood"
	}
	return string(ch)
}

// ChannelAmount holds the manually reconciled money for one channel.
// Value and Quantity are entered independently from the card terminal /
// platform report — value is NOT quantity times any price.
type ChannelAmount struct {
	Value    decimal.Decimal `json:"value"`
	Quantity int             `json:"quantity"`
}

// UnmarshalJSON tolerates the legacy snapshot schema where a channel was a
// bare number. Anything that is not a {value, quantity} object decodes to
// the zero amount instead of failing the whole load.
func (a *ChannelAmount) UnmarshalJSON(b []byte) error {
	type plain ChannelAmount
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		*a = ChannelAmount{}
		return nil
	}
	*a = ChannelAmount(v)
	return nil
}

// VoucherEntry is one voucher-count row. Rows are keyed by position: a
// voucher row has no identity beyond its order in the list.
type VoucherEntry struct {
	// CompanyID references CompanyConfig.ID; empty means "not picked yet".
	// A reference missing from the catalog is kept as-is and prices at zero.
	CompanyID string `json:"companyId"`
	Quantity  int    `json:"quantity"`
}

// MiscEntry is an ad-hoc item sale priced at entry time, not tied to the
// catalog ("venda avulsa").
type MiscEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	// Total is always Quantity × UnitPrice, recomputed by the reducer on
	// every quantity or unit-price change. It is never edited directly.
	Total decimal.Decimal `json:"total"`
}

// ExpenseEntry is one discrete cash outflow ("saída").
type ExpenseEntry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// DailyReport is the aggregate root for one day's closing. JSON keys match
// the persisted snapshot schema, legacy field names included, so snapshots
// written by earlier versions of the tool still load.
type DailyReport struct {
	// Date is the business day in YYYY-MM-DD form.
	Date           string                    `json:"date"`
	OpeningBalance decimal.Decimal           `json:"openingBalance"`
	VoucherEntries []VoucherEntry            `json:"companyEntries"`
	MiscEntries    []MiscEntry               `json:"miscEntries"`
	Channels       map[Channel]ChannelAmount `json:"totals"`
	Expenses       []ExpenseEntry            `json:"expenses"`
}

// NewDailyReport returns an empty report for the given day with all six
// channels present and zeroed.
func NewDailyReport(date string) DailyReport {
	channels := make(map[Channel]ChannelAmount, 6)
	for _, ch := range Channels() {
		channels[ch] = ChannelAmount{Value: decimal.Zero, Quantity: 0}
	}
	return DailyReport{
		Date:           date,
		OpeningBalance: decimal.Zero,
		VoucherEntries: []VoucherEntry{},
		MiscEntries:    []MiscEntry{},
		Channels:       channels,
		Expenses:       []ExpenseEntry{},
	}
}

// Today is the default business day for a freshly created report.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// Clone returns a deep copy. Reducer operations clone before mutating so
// that every revision of the report is an independent value.
func (r DailyReport) Clone() DailyReport {
	out := r
	out.VoucherEntries = make([]VoucherEntry, len(r.VoucherEntries))
	copy(out.VoucherEntries, r.VoucherEntries)
	out.MiscEntries = make([]MiscEntry, len(r.MiscEntries))
	copy(out.MiscEntries, r.MiscEntries)
	out.Expenses = make([]ExpenseEntry, len(r.Expenses))
	copy(out.Expenses, r.Expenses)
	out.Channels = make(map[Channel]ChannelAmount, len(r.Channels))
	for ch, amt := range r.Channels {
		out.Channels[ch] = amt
	}
	return out
}

// Normalize repairs a report after a lenient decode: guarantees all six
// channels exist, drops unknown channels, clamps every negative money or
// count field to zero, and replaces nil sequences with empty ones.
func (r DailyReport) Normalize() DailyReport {
	out := r.Clone()
	if out.Date == "" {
		out.Date = Today()
	}
	out.OpeningBalance = clampDecimal(out.OpeningBalance)

	channels := make(map[Channel]ChannelAmount, 6)
	for _, ch := range Channels() {
		amt := out.Channels[ch]
		channels[ch] = ChannelAmount{
			Value:    clampDecimal(amt.Value),
			Quantity: clampInt(amt.Quantity),
		}
	}
	out.Channels = channels

	for i, v := range out.VoucherEntries {
		out.VoucherEntries[i].Quantity = clampInt(v.Quantity)
	}
	for i, m := range out.MiscEntries {
		out.MiscEntries[i].Quantity = clampInt(m.Quantity)
		out.MiscEntries[i].UnitPrice = clampDecimal(m.UnitPrice)
		out.MiscEntries[i].Total = clampDecimal(m.Total)
	}
	for i, e := range out.Expenses {
		out.Expenses[i].Value = clampDecimal(e.Value)
	}
	return out
}

// Forgiving-input policy: out-of-range numbers degrade to zero, they are
// never an error.
func clampDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
