package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledgerlite/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// dateLayout is the calendar-date storage format for transaction dates.
const dateLayout = "2006-01-02"

// SQLiteRepository is the persistence collaborator: it loads full per-user
// collections at session start and receives the full updated collection
// after every mutation.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions implements ledger.Store. Rows that fail to parse are
// skipped with a warning rather than failing the load: a corrupt entry must
// degrade to a smaller collection, never to a fatal error.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, category, description, amount, tx_date, source_fixed_cost_id
		FROM transactions
		WHERE user_id = ?
		ORDER BY tx_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			tx                        core.Transaction
			amountStr, dateStr, srcID string
		)
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Category, &tx.Description, &amountStr, &dateStr, &srcID); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable transaction row",
				"user_id", userID,
				"error", err)
			continue
		}
		amount, err := core.ParseMoney(amountStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping transaction with corrupt amount",
				"id", tx.ID,
				"amount", amountStr)
			continue
		}
		when, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			slog.WarnContext(ctx, "Skipping transaction with corrupt date",
				"id", tx.ID,
				"date", dateStr)
			continue
		}
		tx.UserID = userID
		tx.Amount = amount
		tx.Date = when
		tx.SourceFixedCostID = srcID
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// SaveTransactions implements ledger.Store by replacing the user's whole
// collection in one transaction, matching the engine's
// full-collection-after-mutation contract.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, userID string, txs []core.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, user_id, type, category, description, amount, tx_date, source_fixed_cost_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		_, err := stmt.ExecContext(ctx,
			tx.ID, userID, string(tx.Type), tx.Category, tx.Description,
			tx.Amount.String(), tx.Date.Format(dateLayout), tx.SourceFixedCostID)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	// Keep export bookkeeping aligned with the collection: drop state for
	// transactions that no longer exist and queue new ones as pending.
	// INSERT OR IGNORE preserves the status of rows already exported.
	if _, err := dbTx.ExecContext(ctx, `
		DELETE FROM export_states
		WHERE user_id = ?
		  AND transaction_id NOT IN (SELECT id FROM transactions WHERE user_id = ?)`,
		userID, userID); err != nil {
		return fmt.Errorf("prune export states: %w", err)
	}
	if _, err := dbTx.ExecContext(ctx, `
		INSERT OR IGNORE INTO export_states (user_id, transaction_id)
		SELECT user_id, id FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("queue export states: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transactions: %w", err)
	}

	slog.DebugContext(ctx, "Transaction collection saved",
		"user_id", userID,
		"count", len(txs))
	return nil
}

// ErrNotFound reports a missing row on point lookups.
var ErrNotFound = errors.New("not found")

// GetTransaction returns a single transaction by ID, for the export worker.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, category, description, amount, tx_date, source_fixed_cost_id
		FROM transactions
		WHERE user_id = ? AND id = ?`, userID, id)

	var (
		tx                        core.Transaction
		amountStr, dateStr, srcID string
	)
	err := row.Scan(&tx.ID, &tx.Type, &tx.Category, &tx.Description, &amountStr, &dateStr, &srcID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	amount, err := core.ParseMoney(amountStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amountStr, err)
	}
	when, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}

	tx.UserID = userID
	tx.Amount = amount
	tx.Date = when
	tx.SourceFixedCostID = srcID
	return tx, nil
}

// PendingExport identifies a transaction that has not reached the export
// target yet.
type PendingExport struct {
	UserID        string
	TransactionID string
}

// ListPendingExports returns transactions still awaiting export, oldest
// first. Rows touched more recently than olderThan are left alone so the
// catch-up pass does not race deliveries that are already in flight.
// Errored rows are included so transient export failures get retried.
func (r *SQLiteRepository) ListPendingExports(ctx context.Context, olderThan time.Duration, limit int) ([]PendingExport, error) {
	cutoff := fmt.Sprintf("-%d seconds", int(olderThan.Seconds()))
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, transaction_id
		FROM export_states
		WHERE status IN ('pending', 'error')
		  AND updated_at <= datetime('now', ?)
		ORDER BY updated_at ASC
		LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending exports: %w", err)
	}
	defer rows.Close()

	pending := make([]PendingExport, 0)
	for rows.Next() {
		var p PendingExport
		if err := rows.Scan(&p.UserID, &p.TransactionID); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending exports: %w", err)
	}
	return pending, nil
}

// MarkExported records a successful export.
func (r *SQLiteRepository) MarkExported(ctx context.Context, userID, transactionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE export_states
		SET status = 'exported', updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND transaction_id = ?`, userID, transactionID)
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	return nil
}

// MarkExportError flags a transaction whose export failed; the catch-up
// pass will retry it.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, userID, transactionID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE export_states
		SET status = 'error', updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ? AND transaction_id = ?`, userID, transactionID)
	if err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	return nil
}

// ListFixedCosts returns the user's fixed costs ordered by description.
func (r *SQLiteRepository) ListFixedCosts(ctx context.Context, userID string) ([]core.FixedCostItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, description, amount
		FROM fixed_costs
		WHERE user_id = ?
		ORDER BY description ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query fixed costs: %w", err)
	}
	defer rows.Close()

	items := make([]core.FixedCostItem, 0)
	for rows.Next() {
		var (
			fc        core.FixedCostItem
			amountStr string
		)
		if err := rows.Scan(&fc.ID, &fc.Category, &fc.Description, &amountStr); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable fixed cost row",
				"user_id", userID,
				"error", err)
			continue
		}
		amount, err := core.ParseMoney(amountStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping fixed cost with corrupt amount",
				"id", fc.ID,
				"amount", amountStr)
			continue
		}
		fc.UserID = userID
		fc.Amount = amount
		items = append(items, fc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fixed costs: %w", err)
	}
	return items, nil
}

// AddFixedCost stores a new fixed cost template and returns it with its
// assigned ID.
func (r *SQLiteRepository) AddFixedCost(ctx context.Context, userID string, form core.FixedCostForm) (core.FixedCostItem, error) {
	if err := form.Validate(); err != nil {
		return core.FixedCostItem{}, fmt.Errorf("validate fixed cost: %w", err)
	}

	fc := core.FixedCostItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    form.Category,
		Description: form.Description,
		Amount:      form.Amount,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fixed_costs (id, user_id, category, description, amount)
		VALUES (?, ?, ?, ?, ?)`,
		fc.ID, userID, fc.Category, fc.Description, fc.Amount.String())
	if err != nil {
		return core.FixedCostItem{}, fmt.Errorf("insert fixed cost: %w", err)
	}

	slog.InfoContext(ctx, "Fixed cost saved",
		"id", fc.ID,
		"user_id", userID,
		"description", fc.Description,
		"amount", fc.Amount.String())
	return fc, nil
}

// DeleteFixedCost removes a fixed cost template. Transactions already
// generated from it stay untouched; a missing ID is a no-op.
func (r *SQLiteRepository) DeleteFixedCost(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM fixed_costs WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete fixed cost: %w", err)
	}
	return nil
}
