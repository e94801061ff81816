package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/PedroArthur06/revenue-aggregator/internal/formatter"
	"github.com/PedroArthur06/revenue-aggregator/internal/model"
	"github.com/PedroArthur06/revenue-aggregator/internal/report"
	"github.com/PedroArthur06/revenue-aggregator/internal/snapshot"
)

// ErrResetNotConfirmed is returned when a day reset arrives without the
// explicit confirmation flag. Declining a reset must leave both the
// in-memory report and the persisted snapshot completely unchanged.
var ErrResetNotConfirmed = errors.New("reinício do dia não confirmado")

// ClosingService owns the current report revision for the session. Every
// mutation dispatches one pure reducer operation, persists the resulting
// revision, and only then swaps it in — a failed save leaves the previous
// revision current.
type ClosingService interface {
	Current(ctx context.Context) (model.DailyReport, report.Totals, error)
	SetDate(ctx context.Context, date string) (model.DailyReport, report.Totals, error)
	SetOpeningBalance(ctx context.Context, value decimal.Decimal) (model.DailyReport, report.Totals, error)

	AddVoucherRow(ctx context.Context) (model.DailyReport, report.Totals, error)
	UpdateVoucherRow(ctx context.Context, index int, companyID *string, quantity *int) (model.DailyReport, report.Totals, error)
	RemoveVoucherRow(ctx context.Context, index int) (model.DailyReport, report.Totals, error)

	AddMiscRow(ctx context.Context) (model.DailyReport, report.Totals, error)
	UpdateMiscRow(ctx context.Context, id string, patch report.MiscPatch) (model.DailyReport, report.Totals, error)
	RemoveMiscRow(ctx context.Context, id string) (model.DailyReport, report.Totals, error)

	AddExpenseRow(ctx context.Context) (model.DailyReport, report.Totals, error)
	UpdateExpenseRow(ctx context.Context, id string, patch report.ExpensePatch) (model.DailyReport, report.Totals, error)
	RemoveExpenseRow(ctx context.Context, id string) (model.DailyReport, report.Totals, error)

	SetChannel(ctx context.Context, ch model.Channel, value *decimal.Decimal, quantity *int) (model.DailyReport, report.Totals, error)

	Summary(ctx context.Context) (string, error)
	Reset(ctx context.Context, confirm bool) (model.DailyReport, report.Totals, error)
}

type closingService struct {
	// One session, one lock: mutations are discrete user actions and each
	// completes before the next is accepted.
	mu      sync.Mutex
	current model.DailyReport
	store   snapshot.Store
	catalog *model.Catalog
}

// NewClosingService hydrates the current revision from the snapshot store.
// An absent snapshot starts a fresh report for today; an old-schema blob
// is downgraded lossily by the codec, never an error.
func NewClosingService(ctx context.Context, store snapshot.Store, catalog *model.Catalog) (ClosingService, error) {
	raw, ok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	current := model.NewDailyReport(model.Today())
	if ok {
		current = snapshot.Decode(raw, model.Today())
	}
	return &closingService{current: current, store: store, catalog: catalog}, nil
}

// ── Reads ────────────────────────────────────────────────────────────────────

func (s *closingService) Current(_ context.Context) (model.DailyReport, report.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, report.Derive(s.current, s.catalog), nil
}

func (s *closingService) Summary(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatter.Format(s.current, report.Derive(s.current, s.catalog), s.catalog), nil
}

// ── Mutations ────────────────────────────────────────────────────────────────

func (s *closingService) SetDate(ctx context.Context, date string) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.SetDate(r, date), nil
	})
}

func (s *closingService) SetOpeningBalance(ctx context.Context, value decimal.Decimal) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.SetOpeningBalance(r, value), nil
	})
}

func (s *closingService) AddVoucherRow(ctx context.Context) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.AddVoucherRow(r), nil
	})
}

func (s *closingService) UpdateVoucherRow(ctx context.Context, index int, companyID *string, quantity *int) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.UpdateVoucherRow(r, index, companyID, quantity), nil
	})
}

func (s *closingService) RemoveVoucherRow(ctx context.Context, index int) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.RemoveVoucherRow(r, index), nil
	})
}

func (s *closingService) AddMiscRow(ctx context.Context) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.AddMiscRow(r), nil
	})
}

func (s *closingService) UpdateMiscRow(ctx context.Context, id string, patch report.MiscPatch) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.UpdateMiscRow(r, id, patch), nil
	})
}

func (s *closingService) RemoveMiscRow(ctx context.Context, id string) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.RemoveMiscRow(r, id), nil
	})
}

func (s *closingService) AddExpenseRow(ctx context.Context) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.AddExpenseRow(r), nil
	})
}

func (s *closingService) UpdateExpenseRow(ctx context.Context, id string, patch report.ExpensePatch) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.UpdateExpenseRow(r, id, patch), nil
	})
}

func (s *closingService) RemoveExpenseRow(ctx context.Context, id string) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.RemoveExpenseRow(r, id), nil
	})
}

func (s *closingService) SetChannel(ctx context.Context, ch model.Channel, value *decimal.Decimal, quantity *int) (model.DailyReport, report.Totals, error) {
	return s.apply(ctx, func(r model.DailyReport) (model.DailyReport, error) {
		return report.SetChannel(r, ch, value, quantity)
	})
}

// Reset is the sole point of no return. Confirmation and action are atomic
// under the session lock: a declined reset touches nothing, a confirmed
// reset clears the store before the fresh report becomes current.
func (s *closingService) Reset(ctx context.Context, confirm bool) (model.DailyReport, report.Totals, error) {
	if !confirm {
		return model.DailyReport{}, report.Totals{}, ErrResetNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return model.DailyReport{}, report.Totals{}, err
	}
	s.current = model.NewDailyReport(model.Today())
	return s.current, report.Derive(s.current, s.catalog), nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// apply runs one reducer step and persists the outcome. The new revision
// becomes current only after the snapshot save succeeds.
func (s *closingService) apply(ctx context.Context, op func(model.DailyReport) (model.DailyReport, error)) (model.DailyReport, report.Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.current)
	if err != nil {
		return model.DailyReport{}, report.Totals{}, err
	}
	raw, err := snapshot.Encode(next)
	if err != nil {
		return model.DailyReport{}, report.Totals{}, err
	}
	if err := s.store.Save(ctx, raw); err != nil {
		return model.DailyReport{}, report.Totals{}, err
	}
	s.current = next
	return next, report.Derive(next, s.catalog), nil
}
