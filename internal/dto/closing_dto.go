package dto

import (
	"github.com/shopspring/decimal"

	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/report"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────
// Numeric fields carry no min=0 tags on purpose: the forgiving-input policy
// clamps out-of-range numbers to zero inside the reducer instead of
// rejecting the request.

type SetDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type SetOpeningBalanceRequest struct {
	Value decimal.Decimal `json:"value"`
}

type UpdateVoucherRequest struct {
	CompanyID *string `json:"companyId"`
	Quantity  *int    `json:"quantity"`
}

type UpdateMiscRequest struct {
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

type UpdateExpenseRequest struct {
	Description *string          `json:"description"`
	Value       *decimal.Decimal `json:"value"`
}

type SetChannelRequest struct {
	Value    *decimal.Decimal `json:"value"`
	Quantity *int             `json:"quantity"`
}

// ResetRequest guards the one irreversible action of the system.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ClosingResponse is what every read and every mutation returns: the new
// report revision plus its derived totals.
type ClosingResponse struct {
	Report model.DailyReport `json:"report"`
	Totals report.Totals     `json:"totals"`
}
