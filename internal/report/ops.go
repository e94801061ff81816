// Package report implements the closing-report core: the pure reducer
// operations that produce a new report revision from the previous one, and
// the derivation engine that folds a revision into displayed totals.
//
// Operations never mutate their input — they clone, apply, and return. The
// owner of the current revision (the session service) decides what to do
// with each new value.
package report

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

// ErrInvalidChannel signals a channel key outside the closed six-channel
// set. This is a programming error, not user input — the UI only ever
// offers the six known keys.
var ErrInvalidChannel = errors.New("canal financeiro desconhecido")

// MiscPatch is a partial update for a misc row. Nil fields are untouched.
type MiscPatch struct {
	Description *string
	Quantity    *int
	UnitPrice   *decimal.Decimal
}

// ExpensePatch is a partial update for an expense row.
type ExpensePatch struct {
	Description *string
	Value       *decimal.Decimal
}

// ── Voucher rows (position-keyed) ────────────────────────────────────────────

// AddVoucherRow appends an empty voucher row: no company picked, zero count.
func AddVoucherRow(r model.DailyReport) model.DailyReport {
	out := r.Clone()
	out.VoucherEntries = append(out.VoucherEntries, model.VoucherEntry{})
	return out
}

// UpdateVoucherRow overwrites the given fields of the row at index.
// An out-of-range index is a silent no-op: the row may have been removed
// by a previous action the UI has not caught up with yet.
func UpdateVoucherRow(r model.DailyReport, index int, companyID *string, quantity *int) model.DailyReport {
	if index < 0 || index >= len(r.VoucherEntries) {
		return r
	}
	out := r.Clone()
	if companyID != nil {
		out.VoucherEntries[index].CompanyID = *companyID
	}
	if quantity != nil {
		out.VoucherEntries[index].Quantity = clampCount(*quantity)
	}
	return out
}

// RemoveVoucherRow removes by position; subsequent rows shift down.
func RemoveVoucherRow(r model.DailyReport, index int) model.DailyReport {
	if index < 0 || index >= len(r.VoucherEntries) {
		return r
	}
	out := r.Clone()
	out.VoucherEntries = append(out.VoucherEntries[:index], out.VoucherEntries[index+1:]...)
	return out
}

// ── Misc rows (id-keyed) ─────────────────────────────────────────────────────

// AddMiscRow appends a fresh misc sale: quantity 1, price and total zero.
func AddMiscRow(r model.DailyReport) model.DailyReport {
	out := r.Clone()
	out.MiscEntries = append(out.MiscEntries, model.MiscEntry{
		ID:        uuid.NewString(),
		Quantity:  1,
		UnitPrice: decimal.Zero,
		Total:     decimal.Zero,
	})
	return out
}

// UpdateMiscRow applies a patch to the row with the given id. Whenever
// quantity or unit price changes the total is recomputed as
// quantity × unitPrice; a description-only patch leaves the total alone.
// An unknown id is a silent no-op.
func UpdateMiscRow(r model.DailyReport, id string, patch MiscPatch) model.DailyReport {
	idx := findMisc(r.MiscEntries, id)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	row := &out.MiscEntries[idx]
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	recompute := false
	if patch.Quantity != nil {
		row.Quantity = clampCount(*patch.Quantity)
		recompute = true
	}
	if patch.UnitPrice != nil {
		row.UnitPrice = clampMoney(*patch.UnitPrice)
		recompute = true
	}
	if recompute {
		row.Total = row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
	}
	return out
}

func RemoveMiscRow(r model.DailyReport, id string) model.DailyReport {
	idx := findMisc(r.MiscEntries, id)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	out.MiscEntries = append(out.MiscEntries[:idx], out.MiscEntries[idx+1:]...)
	return out
}

// ── Expense rows (id-keyed) ──────────────────────────────────────────────────

func AddExpenseRow(r model.DailyReport) model.DailyReport {
	out := r.Clone()
	out.Expenses = append(out.Expenses, model.ExpenseEntry{
		ID:    uuid.NewString(),
		Value: decimal.Zero,
	})
	return out
}

func UpdateExpenseRow(r model.DailyReport, id string, patch ExpensePatch) model.DailyReport {
	idx := findExpense(r.Expenses, id)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	row := &out.Expenses[idx]
	if patch.Description != nil {
		row.Description = *patch.Description
	}
	if patch.Value != nil {
		row.Value = clampMoney(*patch.Value)
	}
	return out
}

func RemoveExpenseRow(r model.DailyReport, id string) model.DailyReport {
	idx := findExpense(r.Expenses, id)
	if idx < 0 {
		return r
	}
	out := r.Clone()
	out.Expenses = append(out.Expenses[:idx], out.Expenses[idx+1:]...)
	return out
}

// ── Channels and header fields ───────────────────────────────────────────────

// SetChannel overwrites the given fields of one financial channel.
// Unlike row operations, an unknown channel fails loudly: the six channels
// are a compile-time-known set and nothing reachable from the UI can miss.
func SetChannel(r model.DailyReport, ch model.Channel, value *decimal.Decimal, quantity *int) (model.DailyReport, error) {
	if !ch.Valid() {
		return r, ErrInvalidChannel
	}
	out := r.Clone()
	amt := out.Channels[ch]
	if value != nil {
		amt.Value = clampMoney(*value)
	}
	if quantity != nil {
		amt.Quantity = clampCount(*quantity)
	}
	out.Channels[ch] = amt
	return out, nil
}

func SetOpeningBalance(r model.DailyReport, value decimal.Decimal) model.DailyReport {
	out := r.Clone()
	out.OpeningBalance = clampMoney(value)
	return out
}

func SetDate(r model.DailyReport, date string) model.DailyReport {
	out := r.Clone()
	out.Date = date
	return out
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func findMisc(rows []model.MiscEntry, id string) int {
	for i, row := range rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func findExpense(rows []model.ExpenseEntry, id string) int {
	for i, row := range rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Forgiving-input policy: negative amounts degrade to zero, never an error.
func clampMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
