// Package storage is the durable record store behind the aggregation core.
// It hands each request a private copy of the owner's transaction set; all
// filtering and aggregation happen downstream on that copy.
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

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a transaction does not exist or belongs to a
// different owner. Callers must not learn which of the two it was.
var ErrNotFound = errors.New("transaction not found")

// AuditAction names audit log entries written by the mirror worker.
type AuditAction string

const (
	AuditCreated  AuditAction = "created"
	AuditUpdated  AuditAction = "updated"
	AuditDeleted  AuditAction = "deleted"
	AuditMirrored AuditAction = "mirrored"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
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

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner, type, amount_cents, category, description, date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Owner, string(t.Type), t.Amount.Cents, t.Category, t.Description,
		t.Date.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"owner", t.Owner,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)
	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, owner, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner, type, amount_cents, category, description, date
		 FROM transactions WHERE id = ? AND owner = ?`, id, owner)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, amount_cents = ?, category = ?, description = ?, date = ?,
		     updated_at = datetime('now')
		 WHERE id = ? AND owner = ?`,
		string(t.Type), t.Amount.Cents, t.Category, t.Description,
		t.Date.UTC().Format(time.RFC3339), t.ID, t.Owner)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID, "owner", t.Owner)
	return nil
}

func (r *Repository) DeleteTransaction(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "owner", owner)
	return nil
}

// ListTransactions returns the owner's full transaction set sorted by date
// descending, newest first. Date-range and category narrowing are applied
// downstream by the query filter, which keeps aggregation a pure function of
// the handed-in set.
func (r *Repository) ListTransactions(ctx context.Context, owner string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, type, amount_cents, category, description, date
		 FROM transactions WHERE owner = ?
		 ORDER BY date DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// GetSettings returns the owner's settings, falling back to the default
// currency when no row exists yet.
func (r *Repository) GetSettings(ctx context.Context, owner, defaultCurrency string) (core.UserSettings, error) {
	var currency string
	err := r.db.QueryRowContext(ctx,
		`SELECT currency FROM user_settings WHERE owner = ?`, owner).Scan(&currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.UserSettings{Owner: owner, Currency: defaultCurrency}, nil
	}
	if err != nil {
		return core.UserSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return core.UserSettings{Owner: owner, Currency: currency}, nil
}

func (r *Repository) SaveSettings(ctx context.Context, s core.UserSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_settings (owner, currency) VALUES (?, ?)
		 ON CONFLICT (owner) DO UPDATE SET currency = excluded.currency,
		                                   updated_at = datetime('now')`,
		s.Owner, s.Currency)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings saved", "owner", s.Owner, "currency", s.Currency)
	return nil
}

func (r *Repository) RecordAudit(ctx context.Context, owner, transactionID string, action AuditAction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (transaction_id, owner, action) VALUES (?, ?, ?)`,
		transactionID, owner, string(action))
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}
	return nil
}

// AuditEntry is one row of the mirror worker's audit trail.
type AuditEntry struct {
	ID            int64
	TransactionID string
	Owner         string
	Action        AuditAction
	RecordedAt    string
}

func (r *Repository) ListAudit(ctx context.Context, transactionID string) ([]AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, transaction_id, owner, action, recorded_at
		 FROM audit_log WHERE transaction_id = ? ORDER BY id`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.Owner, &action, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = AuditAction(action)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		typ     string
		cents   int64
		dateStr string
	)
	if err := row.Scan(&t.ID, &t.Owner, &typ, &cents, &t.Category, &t.Description, &dateStr); err != nil {
		return core.Transaction{}, err
	}
	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	t.Type = core.TxType(typ)
	t.Amount = core.Money{Cents: cents}
	t.Date = date.UTC()
	return t, nil
}
