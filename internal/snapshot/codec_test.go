package snapshot

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
)

const today = "2026-08-31"

func sampleReport() model.DailyReport {
	r := model.NewDailyReport(today)
	r.OpeningBalance = decimal.NewFromFloat(150.50)
	r.VoucherEntries = []model.VoucherEntry{
		{CompanyID: "todimo", Quantity: 3},
		{CompanyID: "", Quantity: 0},
	}
	r.MiscEntries = []model.MiscEntry{
		{ID: "m-1", Description: "refrigerante", Quantity: 2,
			UnitPrice: decimal.NewFromFloat(6.50), Total: decimal.NewFromInt(13)},
	}
	r.Channels[model.ChannelCash] = model.ChannelAmount{Value: decimal.NewFromInt(100), Quantity: 5}
	r.Channels[model.ChannelPixPersonal] = model.ChannelAmount{Value: decimal.NewFromFloat(42.75), Quantity: 2}
	r.Expenses = []model.ExpenseEntry{
		{ID: "e-1", Description: "gás", Value: decimal.NewFromInt(120)},
	}
	return r
}

func TestRoundTrip(t *testing.T) {
	r := sampleReport()

	raw, err := Encode(r)
	require.NoError(t, err)
	got := Decode(raw, today)

	assert.Equal(t, r.Date, got.Date)
	assert.Equal(t, r.OpeningBalance.String(), got.OpeningBalance.String())
	assert.Equal(t, r.VoucherEntries, got.VoucherEntries)
	require.Len(t, got.MiscEntries, 1)
	assert.Equal(t, "refrigerante", got.MiscEntries[0].Description)
	assert.Equal(t, "13", got.MiscEntries[0].Total.String())
	for _, ch := range model.Channels() {
		assert.Equal(t, r.Channels[ch].Value.String(), got.Channels[ch].Value.String(), string(ch))
		assert.Equal(t, r.Channels[ch].Quantity, got.Channels[ch].Quantity, string(ch))
	}
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "120", got.Expenses[0].Value.String())
}

func TestDecodeLegacyBareNumberChannels(t *testing.T) {
	// v1 schema: channels were bare numbers. They must downgrade to zeroed
	// {value, quantity} records without failing, while recognizable fields
	// are preserved.
	raw := []byte(`{
		"date": "2025-01-15",
		"companyEntries": [{"companyId": "todimo", "quantity": 4}],
		"totals": {"creditCard": 120.5, "debitCard": 80, "pixMachine": 0,
		           "pixPersonal": 0, "cash": 300, "ifood": 55.9},
		"expenses": [{"id": "x1", "description": "taxa", "value": 12}]
	}`)

	got := Decode(raw, today)

	assert.Equal(t, "2025-01-15", got.Date)
	require.Len(t, got.VoucherEntries, 1)
	assert.Equal(t, "todimo", got.VoucherEntries[0].CompanyID)
	assert.Equal(t, 4, got.VoucherEntries[0].Quantity)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, "12", got.Expenses[0].Value.String())

	// All six channels present, all zeroed
	assert.Len(t, got.Channels, 6)
	for _, ch := range model.Channels() {
		assert.True(t, got.Channels[ch].Value.IsZero(), string(ch))
		assert.Equal(t, 0, got.Channels[ch].Quantity, string(ch))
	}
}

func TestDecodeGarbageYieldsFreshReport(t *testing.T) {
	got := Decode([]byte(`not json at all`), today)

	fresh := model.NewDailyReport(today)
	assert.Equal(t, fresh.Date, got.Date)
	assert.True(t, got.OpeningBalance.IsZero())
	assert.Len(t, got.Channels, 6)
	assert.Empty(t, got.VoucherEntries)
	assert.Empty(t, got.MiscEntries)
	assert.Empty(t, got.Expenses)
}

func TestDecodeDropsUnrecognizableSubstructures(t *testing.T) {
	// Lossy policy: a broken expense list disappears, the rest survives.
	raw := []byte(`{
		"date": "2025-02-02",
		"openingBalance": 90,
		"companyEntries": [{"companyId": "Videira", "quantity": 2}],
		"expenses": "isto-nao-e-uma-lista",
		"totals": {"cash": {"value": 10, "quantity": 1}, "cheque": {"value": 999}}
	}`)

	got := Decode(raw, today)

	assert.Equal(t, "2025-02-02", got.Date)
	assert.Equal(t, "90", got.OpeningBalance.String())
	require.Len(t, got.VoucherEntries, 1)
	assert.Empty(t, got.Expenses)
	// Known channel kept, unknown channel dropped, set stays at six
	assert.Equal(t, "10", got.Channels[model.ChannelCash].Value.String())
	assert.Len(t, got.Channels, 6)
}

func TestDecodeClampsNegatives(t *testing.T) {
	raw := []byte(`{
		"date": "2025-03-03",
		"openingBalance": -50,
		"companyEntries": [{"companyId": "todimo", "quantity": -2}],
		"totals": {"cash": {"value": -1, "quantity": -1}}
	}`)

	got := Decode(raw, today)

	assert.True(t, got.OpeningBalance.IsZero())
	require.Len(t, got.VoucherEntries, 1)
	assert.Equal(t, 0, got.VoucherEntries[0].Quantity)
	assert.True(t, got.Channels[model.ChannelCash].Value.IsZero())
	assert.Equal(t, 0, got.Channels[model.ChannelCash].Quantity)
}

func TestDecodeMissingDateDefaultsToToday(t *testing.T) {
	got := Decode([]byte(`{}`), today)
	assert.Equal(t, today, got.Date)
}
