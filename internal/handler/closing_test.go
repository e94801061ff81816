package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroArthur06/revenue-aggregator/internal/config"
	"github.com/PedroArthur06/revenue-aggregator/internal/dto"
	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/router"
	"github.com/PedroArthur06/revenue-aggregator/internal/service"
	"github.com/PedroArthur06/revenue-aggregator/internal/snapshot"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := model.NewCatalog([]model.CompanyConfig{
		{ID: "todimo", Name: "Todimo", PricePerUnit: decimal.NewFromFloat(18.00)},
	})
	store := snapshot.NewMemoryStore()
	svc, err := service.NewClosingService(context.Background(), store, cat)
	require.NoError(t, err)

	cfg := &config.Config{Env: "test", RateLimitPerMin: 10000}
	return router.New(cfg, svc, store, cat)
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeClosing(t *testing.T, w *httptest.ResponseRecorder) dto.ClosingResponse {
	t.Helper()
	var resp dto.ClosingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestClosingFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/v1/closing/vouchers", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPut, "/v1/closing/vouchers/0", `{"companyId":"todimo","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeClosing(t, w)
	assert.Equal(t, "54", resp.Totals.TotalVouchers.String())

	w = do(t, r, http.MethodPut, "/v1/closing/channels/cash", `{"value":100,"quantity":5}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeClosing(t, w)
	assert.Equal(t, "100", resp.Totals.TotalFinancial.String())
	assert.Equal(t, "154", resp.Totals.GrandTotal.String())

	w = do(t, r, http.MethodGet, "/v1/closing/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Todimo x3")
}

func TestUnknownChannelReturns400(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/v1/closing/channels/cheque", `{"value":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoucherIndexOutOfRangeIsNoOp(t *testing.T) {
	r := newTestRouter(t)

	// No rows exist — update is a silent no-op, not an error
	w := do(t, r, http.MethodPut, "/v1/closing/vouchers/5", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeClosing(t, w)
	assert.Empty(t, resp.Report.VoucherEntries)
}

func TestResetWithoutConfirmReturns400(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/v1/closing/expenses", "")

	w := do(t, r, http.MethodPost, "/v1/closing/reset", `{"confirm":false}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/v1/closing", "")
	resp := decodeClosing(t, w)
	assert.Len(t, resp.Report.Expenses, 1)
}

func TestResetConfirmedStartsFreshDay(t *testing.T) {
	r := newTestRouter(t)

	do(t, r, http.MethodPost, "/v1/closing/expenses", "")

	w := do(t, r, http.MethodPost, "/v1/closing/reset", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeClosing(t, w)
	assert.Empty(t, resp.Report.Expenses)
	assert.True(t, resp.Totals.GrandTotal.IsZero())
}

func TestSetDateValidation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/v1/closing/date", `{"date":"31/08/2026"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPut, "/v1/closing/date", `{"date":"2026-08-31"}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeClosing(t, w)
	assert.Equal(t, "2026-08-31", resp.Report.Date)
}

func TestCatalogEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "todimo")
}
