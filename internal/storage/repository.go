package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/ledger"

	_ "modernc.org/sqlite"
)

// ErrNoAccount is returned when the database has not been seeded yet.
var ErrNoAccount = errors.New("account not found")

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

// Ping checks the database connection.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Seed inserts the dataset rows that are not stored yet. Existing rows are
// left untouched so that a restarted server never rewrites history.
func (r *SQLiteRepository) Seed(ctx context.Context, d ledger.Dataset) error {
	if err := core.ValidateAll(d.Transactions); err != nil {
		return fmt.Errorf("validate dataset: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	a := d.Account
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO account
		(id, bank, account_name, account_no_masked, owner, status, balance, available, last_updated)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Bank, a.AccountName, a.AccountNoMasked, a.Owner, a.Status,
		a.Balance.String(), a.Available.String(), a.LastUpdated); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}

	for i, qa := range d.Actions {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO quick_actions (id, position, label, icon) VALUES (?, ?, ?, ?)`,
			qa.ID, i, qa.Label, qa.Icon); err != nil {
			return fmt.Errorf("seed quick action %s: %w", qa.ID, err)
		}
	}

	inserted := 0
	for i, t := range d.Transactions {
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO transactions
			(id, position, date, description, amount, category, ref_code)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, i, t.Date, t.Desc, t.Amount.String(), t.Category, t.RefCode)
		if err != nil {
			return fmt.Errorf("seed transaction %s: %w", t.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}

	slog.InfoContext(ctx, "Dataset seeded to SQLite",
		"transactions_total", len(d.Transactions),
		"transactions_inserted", inserted,
		"actions", len(d.Actions))
	return nil
}

// ReadAccount implements ledger.AccountReader
func (r *SQLiteRepository) ReadAccount(ctx context.Context) (core.Account, error) {
	var (
		a                  core.Account
		balance, available string
	)
	err := r.db.QueryRowContext(ctx, `SELECT bank, account_name, account_no_masked, owner, status, balance, available, last_updated
		FROM account WHERE id = 1`).
		Scan(&a.Bank, &a.AccountName, &a.AccountNoMasked, &a.Owner, &a.Status, &balance, &available, &a.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Account{}, ErrNoAccount
	}
	if err != nil {
		return core.Account{}, fmt.Errorf("read account: %w", err)
	}

	if a.Balance, err = core.ParseAmount(balance); err != nil {
		return core.Account{}, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	if a.Available, err = core.ParseAmount(available); err != nil {
		return core.Account{}, fmt.Errorf("parse available %q: %w", available, err)
	}
	return a, nil
}

// ListTransactions implements ledger.TransactionLister
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, date, description, amount, category, ref_code
		FROM transactions ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t      core.Transaction
			amount string
		)
		if err := rows.Scan(&t.ID, &t.Date, &t.Desc, &amount, &t.Category, &t.RefCode); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Amount, err = core.ParseAmount(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q for %s: %w", amount, t.ID, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// ListActions implements ledger.ActionLister
func (r *SQLiteRepository) ListActions(ctx context.Context) ([]core.QuickAction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, label, icon FROM quick_actions ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query quick actions: %w", err)
	}
	defer rows.Close()

	var out []core.QuickAction
	for rows.Next() {
		var qa core.QuickAction
		if err := rows.Scan(&qa.ID, &qa.Label, &qa.Icon); err != nil {
			return nil, fmt.Errorf("scan quick action: %w", err)
		}
		out = append(out, qa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quick actions: %w", err)
	}
	return out, nil
}
