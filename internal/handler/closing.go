package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PedroArthur06/revenue-aggregator/internal/apierror"
	"github.com/PedroArthur06/revenue-aggregator/internal/dto"
	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/report"
	"github.com/PedroArthur06/revenue-aggregator/internal/service"
)

type ClosingHandler struct{ svc service.ClosingService }

func NewClosingHandler(svc service.ClosingService) *ClosingHandler {
	return &ClosingHandler{svc: svc}
}

// Current returns the report revision the session holds plus its derived
// totals. Totals are recomputed on every read, never cached.
func (h *ClosingHandler) Current(c *gin.Context) {
	r, t, err := h.svc.Current(c.Request.Context())
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) SetDate(c *gin.Context) {
	var req dto.SetDateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, t, err := h.svc.SetDate(c.Request.Context(), req.Date)
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) SetOpeningBalance(c *gin.Context) {
	var req dto.SetOpeningBalanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, t, err := h.svc.SetOpeningBalance(c.Request.Context(), req.Value)
	h.respond(c, r, t, err)
}

// ── Voucher rows ─────────────────────────────────────────────────────────────

func (h *ClosingHandler) AddVoucherRow(c *gin.Context) {
	r, t, err := h.svc.AddVoucherRow(c.Request.Context())
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) UpdateVoucherRow(c *gin.Context) {
	index, ok := pathIndex(c)
	if !ok {
		return
	}
	var req dto.UpdateVoucherRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, t, err := h.svc.UpdateVoucherRow(c.Request.Context(), index, req.CompanyID, req.Quantity)
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) RemoveVoucherRow(c *gin.Context) {
	index, ok := pathIndex(c)
	if !ok {
		return
	}
	r, t, err := h.svc.RemoveVoucherRow(c.Request.Context(), index)
	h.respond(c, r, t, err)
}

// ── Misc rows ────────────────────────────────────────────────────────────────

func (h *ClosingHandler) AddMiscRow(c *gin.Context) {
	r, t, err := h.svc.AddMiscRow(c.Request.Context())
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) UpdateMiscRow(c *gin.Context) {
	var req dto.UpdateMiscRequest
	if !bindAndValidate(c, &req) {
		return
	}
	patch := report.MiscPatch{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}
	r, t, err := h.svc.UpdateMiscRow(c.Request.Context(), c.Param("id"), patch)
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) RemoveMiscRow(c *gin.Context) {
	r, t, err := h.svc.RemoveMiscRow(c.Request.Context(), c.Param("id"))
	h.respond(c, r, t, err)
}

// ── Expense rows ─────────────────────────────────────────────────────────────

func (h *ClosingHandler) AddExpenseRow(c *gin.Context) {
	r, t, err := h.svc.AddExpenseRow(c.Request.Context())
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) UpdateExpenseRow(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	patch := report.ExpensePatch{
		Description: req.Description,
		Value:       req.Value,
	}
	r, t, err := h.svc.UpdateExpenseRow(c.Request.Context(), c.Param("id"), patch)
	h.respond(c, r, t, err)
}

func (h *ClosingHandler) RemoveExpenseRow(c *gin.Context) {
	r, t, err := h.svc.RemoveExpenseRow(c.Request.Context(), c.Param("id"))
	h.respond(c, r, t, err)
}

// ── Channels, summary, reset ─────────────────────────────────────────────────

func (h *ClosingHandler) SetChannel(c *gin.Context) {
	var req dto.SetChannelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ch := model.Channel(c.Param("channel"))
	r, t, err := h.svc.SetChannel(c.Request.Context(), ch, req.Value, req.Quantity)
	h.respond(c, r, t, err)
}

// Summary returns the shareable text block as text/plain — the sole export
// artifact of the system.
func (h *ClosingHandler) Summary(c *gin.Context) {
	text, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.String(http.StatusOK, text)
}

// Reset starts a new day. Irreversible, so the request must carry an
// explicit confirm flag; anything else leaves state and snapshot untouched.
func (h *ClosingHandler) Reset(c *gin.Context) {
	var req dto.ResetRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, t, err := h.svc.Reset(c.Request.Context(), req.Confirm)
	h.respond(c, r, t, err)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func (h *ClosingHandler) respond(c *gin.Context, r model.DailyReport, t report.Totals, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ClosingResponse{Report: r, Totals: t})
	case errors.Is(err, report.ErrInvalidChannel),
		errors.Is(err, service.ErrResetNotConfirmed):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}

func pathIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("índice inválido"))
		return 0, false
	}
	return index, true
}
