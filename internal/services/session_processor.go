package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/ledger"
	"ledgerlite/internal/metrics"
)

// SessionProcessor runs the automatic bookkeeping that a session refresh
// triggers: applying fixed costs for the current month and closing out
// automatic savings for recently finished months. Both steps are
// idempotent, so running it on every refresh is safe.
type SessionProcessor struct {
	store          Store
	amqpClient     *amqp.Client
	trailingMonths int
	now            func() time.Time
}

// RefreshResult reports what a session refresh actually booked.
type RefreshResult struct {
	FixedCostsApplied int `json:"fixedCostsApplied"`
	SavingsProcessed  int `json:"savingsProcessed"`
}

func NewSessionProcessor(store Store, amqpClient *amqp.Client, trailingMonths int) *SessionProcessor {
	if trailingMonths <= 0 {
		trailingMonths = 6
	}
	return &SessionProcessor{
		store:          store,
		amqpClient:     amqpClient,
		trailingMonths: trailingMonths,
		now:            time.Now,
	}
}

// Refresh performs the per-session bookkeeping for one user.
func (p *SessionProcessor) Refresh(ctx context.Context, userID string) (RefreshResult, error) {
	if p.store == nil {
		return RefreshResult{}, fmt.Errorf("processor not properly initialized")
	}

	now := p.now()

	l, err := ledger.Open(ctx, p.store, userID)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("open ledger: %w", err)
	}
	before := transactionIDs(l)

	result := RefreshResult{}

	// Fixed costs apply to the month in progress.
	items, err := p.store.ListFixedCosts(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("list fixed costs: %w", err)
	}
	applied, err := l.SynchronizeFixedCosts(ctx, items, int(now.Month()), now.Year())
	if err != nil {
		return result, fmt.Errorf("synchronize fixed costs: %w", err)
	}
	result.FixedCostsApplied = applied
	metrics.TransactionsWritten.WithLabelValues("fixed_cost").Add(float64(applied))

	// Automatic savings close out months that have fully elapsed. Walk the
	// trailing window oldest first so each month's surplus is computed after
	// any fixed costs already booked for it.
	for i := p.trailingMonths; i >= 1; i-- {
		target := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		created, err := l.ProcessAutomaticSavings(ctx, int(target.Month()), target.Year(), now)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to process automatic savings",
				"month", int(target.Month()),
				"year", target.Year(),
				"error", err)
			continue
		}
		if created {
			result.SavingsProcessed++
			metrics.TransactionsWritten.WithLabelValues("auto_savings").Inc()
		}
	}

	// Everything booked above went through the same ledger instance, so the
	// diff against the opening snapshot is exactly the new entries.
	for _, id := range newTransactionIDs(before, l) {
		p.publishCreated(ctx, userID, id)
	}

	slog.InfoContext(ctx, "Session refresh complete",
		"user_id", userID,
		"fixed_costs_applied", result.FixedCostsApplied,
		"savings_processed", result.SavingsProcessed)

	return result, nil
}

func (p *SessionProcessor) publishCreated(ctx context.Context, userID, transactionID string) {
	if p.amqpClient == nil {
		return
	}
	msg := &amqp.LedgerEventMessage{
		UserID:        userID,
		TransactionID: transactionID,
		Action:        amqp.ActionCreated,
		Timestamp:     p.now(),
	}
	if err := p.amqpClient.PublishLedgerEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event for system entry",
			"transaction_id", transactionID,
			"error", err)
	}
}

func transactionIDs(l *ledger.Ledger) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, tx := range l.Transactions() {
		ids[tx.ID] = struct{}{}
	}
	return ids
}

func newTransactionIDs(before map[string]struct{}, l *ledger.Ledger) []string {
	var out []string
	for _, tx := range l.Transactions() {
		if _, ok := before[tx.ID]; !ok {
			out = append(out, tx.ID)
		}
	}
	return out
}
