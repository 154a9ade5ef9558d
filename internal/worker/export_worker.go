package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/core"
	"ledgerlite/internal/export"
	"ledgerlite/internal/metrics"
	"ledgerlite/internal/storage"
)

// Storage is the slice of the repository the worker needs: point lookups
// plus the export bookkeeping behind the catch-up pass.
type Storage interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListPendingExports(ctx context.Context, olderThan time.Duration, limit int) ([]storage.PendingExport, error)
	MarkExported(ctx context.Context, userID, transactionID string) error
	MarkExportError(ctx context.Context, userID, transactionID string) error
}

const (
	// pendingBatchSize caps how many transactions one catch-up pass exports.
	pendingBatchSize = 50

	// pendingGrace keeps the catch-up pass off rows whose AMQP delivery may
	// still be in flight.
	pendingGrace = time.Minute
)

// ExportWorker mirrors ledger changes into the configured export target.
// The exporter sits behind a circuit breaker so a misbehaving remote does
// not burn through requeued deliveries.
type ExportWorker struct {
	storage  Storage
	exporter export.Exporter
	breaker  *gobreaker.CircuitBreaker
}

func NewExportWorker(storage Storage, exporter export.Exporter) *ExportWorker {
	settings := gobreaker.Settings{
		Name:        "sheets-export",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Export circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}
	return &ExportWorker{
		storage:  storage,
		exporter: exporter,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// HandleLedgerEvent processes a single ledger change notification.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"user_id", msg.UserID,
		"transaction_id", msg.TransactionID,
		"action", msg.Action)

	var err error
	switch msg.Action {
	case amqp.ActionCreated:
		err = w.exportCreated(ctx, msg)
	case amqp.ActionDeleted:
		err = w.exportDeleted(ctx, msg)
	default:
		// Unknown actions are dropped, not requeued.
		slog.WarnContext(ctx, "Unknown ledger event action, skipping",
			"action", msg.Action, "transaction_id", msg.TransactionID)
		return nil
	}

	if err != nil {
		metrics.ExportsTotal.WithLabelValues(msg.Action, "error").Inc()
		return err
	}
	metrics.ExportsTotal.WithLabelValues(msg.Action, "ok").Inc()
	return nil
}

func (w *ExportWorker) exportCreated(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	stored, err := w.storage.GetTransaction(ctx, msg.UserID, msg.TransactionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before we got to it. Nothing to mirror.
			slog.InfoContext(ctx, "Transaction gone before export, skipping",
				"transaction_id", msg.TransactionID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	_, err = w.breaker.Execute(func() (any, error) {
		ref, appendErr := w.exporter.Append(ctx, stored)
		if appendErr != nil {
			return nil, appendErr
		}
		slog.InfoContext(ctx, "Exported transaction",
			"transaction_id", msg.TransactionID, "row_ref", ref)
		return ref, nil
	})
	if err != nil {
		if markErr := w.storage.MarkExportError(ctx, msg.UserID, msg.TransactionID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error",
				"transaction_id", msg.TransactionID, "error", markErr)
		}
		return fmt.Errorf("append to export target: %w", err)
	}

	if err := w.storage.MarkExported(ctx, msg.UserID, msg.TransactionID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark transaction exported",
			"transaction_id", msg.TransactionID, "error", err)
	}
	return nil
}

// ProcessPendingExports sweeps transactions still marked pending or errored
// and exports them. This catches entries whose change event was lost or
// that failed while the export target was down.
func (w *ExportWorker) ProcessPendingExports(ctx context.Context) error {
	pending, err := w.storage.ListPendingExports(ctx, pendingGrace, pendingBatchSize)
	if err != nil {
		return fmt.Errorf("list pending exports: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		msg := &amqp.LedgerEventMessage{
			UserID:        p.UserID,
			TransactionID: p.TransactionID,
			Action:        amqp.ActionCreated,
		}
		if err := w.exportCreated(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Pending export failed",
				"transaction_id", p.TransactionID, "error", err)
			metrics.ExportsTotal.WithLabelValues(amqp.ActionCreated, "error").Inc()
			continue
		}
		metrics.ExportsTotal.WithLabelValues(amqp.ActionCreated, "ok").Inc()
	}
	return nil
}

func (w *ExportWorker) exportDeleted(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	_, err := w.breaker.Execute(func() (any, error) {
		return nil, w.exporter.Delete(ctx, msg.TransactionID)
	})
	if err != nil {
		return fmt.Errorf("delete from export target: %w", err)
	}
	slog.InfoContext(ctx, "Removed transaction from export target",
		"transaction_id", msg.TransactionID)
	return nil
}
