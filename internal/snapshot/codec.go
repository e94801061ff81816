// Package snapshot persists the closing report as a single versioned blob
// in an opaque key-value store, and decodes older blobs without failing.
package snapshot

import (
	"encoding/json"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

// Key is the fixed, versioned storage key for the daily report blob.
// v2 is the {value, quantity} channel schema; v1 blobs (bare-number
// channels) are still decoded, lossily, by Decode.
const Key = "closing:daily_report:v2"

// Encode serializes a report revision to its persisted form.
func Encode(r model.DailyReport) ([]byte, error) {
	return json.Marshal(r)
}

// Decode turns a persisted blob back into a report. It never fails:
// schema drift is handled by merging whatever fields are still
// recognizable onto a fresh empty report for the given day and dropping
// the rest. Availability over fidelity — this is a low-stakes daily tool
// and a half-recovered report beats a crash at open time.
func Decode(raw []byte, today string) model.DailyReport {
	out := model.NewDailyReport(today)

	// Field-by-field shape probing: each recognizable field merges onto the
	// fresh report, anything that does not decode keeps its default.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Not even the envelope is recognizable — start the day fresh.
		return out
	}

	var date string
	if json.Unmarshal(fields["date"], &date) == nil && date != "" {
		out.Date = date
	}
	if raw, ok := fields["openingBalance"]; ok {
		// Invalid balance keeps the zero default.
		_ = json.Unmarshal(raw, &out.OpeningBalance)
	}

	var vouchers []json.RawMessage
	_ = json.Unmarshal(fields["companyEntries"], &vouchers)
	for _, raw := range vouchers {
		var v model.VoucherEntry
		if json.Unmarshal(raw, &v) == nil {
			out.VoucherEntries = append(out.VoucherEntries, v)
		}
	}

	var misc []json.RawMessage
	_ = json.Unmarshal(fields["miscEntries"], &misc)
	for _, raw := range misc {
		var m model.MiscEntry
		if json.Unmarshal(raw, &m) == nil && m.ID != "" {
			out.MiscEntries = append(out.MiscEntries, m)
		}
	}

	var expenses []json.RawMessage
	_ = json.Unmarshal(fields["expenses"], &expenses)
	for _, raw := range expenses {
		var e model.ExpenseEntry
		if json.Unmarshal(raw, &e) == nil && e.ID != "" {
			out.Expenses = append(out.Expenses, e)
		}
	}

	// Only the six known channels are carried over; ChannelAmount itself
	// downgrades bare-number (v1) values to zero.
	var channels map[model.Channel]json.RawMessage
	_ = json.Unmarshal(fields["totals"], &channels)
	for _, ch := range model.Channels() {
		raw, ok := channels[ch]
		if !ok {
			continue
		}
		var amt model.ChannelAmount
		_ = json.Unmarshal(raw, &amt)
		out.Channels[ch] = amt
	}

	return out.Normalize()
}
