package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/core"
	"ledgerlite/internal/ledger"
	"ledgerlite/internal/metrics"
)

// Store is the persistence surface the service layer needs: the ledger
// collection plus the fixed-cost registry.
type Store interface {
	ledger.Store
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListFixedCosts(ctx context.Context, userID string) ([]core.FixedCostItem, error)
	AddFixedCost(ctx context.Context, userID string, form core.FixedCostForm) (core.FixedCostItem, error)
	DeleteFixedCost(ctx context.Context, userID, id string) error
}

// LedgerService orchestrates ledger operations across storage and AMQP.
// AMQP publish failures never fail the request: the local write is the
// source of truth, export is eventually consistent.
type LedgerService struct {
	store      Store
	amqpClient *amqp.Client
	now        func() time.Time
}

func NewLedgerService(store Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
		now:        time.Now,
	}
}

func (s *LedgerService) open(ctx context.Context, userID string) (*ledger.Ledger, error) {
	l, err := ledger.Open(ctx, s.store, userID)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return l, nil
}

// AddTransaction records a user-entered transaction and publishes a change event.
func (s *LedgerService) AddTransaction(ctx context.Context, userID string, form core.TransactionForm) (core.Transaction, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return core.Transaction{}, err
	}

	tx, err := l.Add(ctx, form)
	if err != nil {
		return core.Transaction{}, err
	}

	metrics.TransactionsWritten.WithLabelValues("manual").Inc()
	s.publishEvent(ctx, userID, tx.ID, amqp.ActionCreated)
	return tx, nil
}

// AddManualSaving records a manual savings contribution. An empty description
// gets a dated default.
func (s *LedgerService) AddManualSaving(ctx context.Context, userID string, amount core.Money, description string, date time.Time) (core.Transaction, error) {
	if date.IsZero() {
		date = s.now()
	}
	form := core.TransactionForm{
		Type:        core.Expense,
		Category:    core.CategoryManualSavings,
		Description: description,
		Amount:      amount,
		Date:        date,
	}

	l, err := s.open(ctx, userID)
	if err != nil {
		return core.Transaction{}, err
	}

	tx, err := l.Add(ctx, form)
	if err != nil {
		return core.Transaction{}, err
	}

	metrics.TransactionsWritten.WithLabelValues("manual_saving").Inc()
	s.publishEvent(ctx, userID, tx.ID, amqp.ActionCreated)
	return tx, nil
}

// DeleteTransaction removes a transaction. Deleting an unknown ID is a no-op.
func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) error {
	l, err := s.open(ctx, userID)
	if err != nil {
		return err
	}

	if err := l.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, userID, id, amqp.ActionDeleted)
	return nil
}

// ListTransactions returns the full ledger, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.Transactions(), nil
}

// Summary returns income, expense and net totals for a month.
func (s *LedgerService) Summary(ctx context.Context, userID string, month time.Month, year int) (core.MonthlySummary, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return core.MonthlySummary{}, err
	}
	return l.Summary(month, year), nil
}

// ChartSeries returns per-month totals for the trailing numMonths months.
func (s *LedgerService) ChartSeries(ctx context.Context, userID string, numMonths int) ([]core.ChartDataPoint, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.ChartSeries(numMonths, s.now()), nil
}

// CategoryBreakdown returns per-category totals for a month.
func (s *LedgerService) CategoryBreakdown(ctx context.Context, userID string, month time.Month, year int) (core.CategoryBreakdown, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return core.CategoryBreakdown{}, err
	}
	return l.CategoryBreakdown(month, year), nil
}

// SavingsSummary returns accumulated savings totals and history.
func (s *LedgerService) SavingsSummary(ctx context.Context, userID string) (core.SavingsSummary, error) {
	l, err := s.open(ctx, userID)
	if err != nil {
		return core.SavingsSummary{}, err
	}
	return l.SavingsSummary(), nil
}

// ListFixedCosts returns the fixed-cost registry, sorted by description.
func (s *LedgerService) ListFixedCosts(ctx context.Context, userID string) ([]core.FixedCostItem, error) {
	items, err := s.store.ListFixedCosts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: %w", err)
	}
	return items, nil
}

// AddFixedCost registers a new fixed-cost template.
func (s *LedgerService) AddFixedCost(ctx context.Context, userID string, form core.FixedCostForm) (core.FixedCostItem, error) {
	item, err := s.store.AddFixedCost(ctx, userID, form)
	if err != nil {
		return core.FixedCostItem{}, fmt.Errorf("add fixed cost: %w", err)
	}
	return item, nil
}

// DeleteFixedCost removes a fixed-cost template. Already-booked ledger
// entries derived from it stay untouched.
func (s *LedgerService) DeleteFixedCost(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteFixedCost(ctx, userID, id); err != nil {
		return fmt.Errorf("delete fixed cost: %w", err)
	}
	return nil
}

func (s *LedgerService) publishEvent(ctx context.Context, userID, transactionID, action string) {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping ledger event")
		return
	}

	msg := &amqp.LedgerEventMessage{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     s.now(),
	}
	if err := s.amqpClient.PublishLedgerEvent(ctx, msg); err != nil {
		// Don't fail the request, the local write succeeded.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"transaction_id", transactionID,
			"action", action,
			"error", err)
	}
}

// Close releases the AMQP connection.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
