package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"financas/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable variant of the record store. It keeps the
// same absence semantics as the memory backend: a missing row comes back as
// (zero, false, nil), never as an error.
type SQLiteRepository struct {
	db *sql.DB

	idMu   sync.Mutex
	lastID int64
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

// newID mirrors the memory backend's id scheme so records keep opaque,
// session-unique string identifiers across both backends.
func (r *SQLiteRepository) newID() string {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	id := time.Now().UnixNano()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

const transactionCols = `id, date, description, amount, type, payment_method, status,
	is_installment, installment_count, current_installment,
	category_id, credit_card_id, due_date, notes`

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var t core.Transaction
	err := row.Scan(
		&t.ID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.PaymentMethod, &t.Status,
		&t.IsInstallment, &t.InstallmentCount, &t.CurrentInstallment,
		&t.CategoryID, &t.CreditCardID, &t.DueDate, &t.Notes,
	)
	return t, err
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionCols+` FROM transactions ORDER BY created_at, id`)
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
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("get transaction: %w", err)
	}
	return t, true, nil
}

func (r *SQLiteRepository) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = r.newID()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionCols+`, sync_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending')`,
		t.ID, t.Date, t.Description, t.Amount, t.Type, t.PaymentMethod, t.Status,
		t.IsInstallment, t.InstallmentCount, t.CurrentInstallment,
		t.CategoryID, t.CreditCardID, t.DueDate, t.Notes,
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"description", t.Description,
		"amount", t.Amount,
		"type", t.Type)
	return t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id string, p core.TransactionPatch) (core.Transaction, bool, error) {
	// Read-modify-write keeps the patch semantics identical to the memory
	// backend; contention is not a concern at this data volume.
	current, ok, err := r.GetTransaction(ctx, id)
	if err != nil || !ok {
		return core.Transaction{}, ok, err
	}
	t := p.Apply(current)
	_, err = r.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, description = ?, amount = ?, type = ?,
		 payment_method = ?, status = ?, category_id = ?, credit_card_id = ?,
		 due_date = ?, notes = ?, sync_status = 'pending'
		 WHERE id = ?`,
		t.Date, t.Description, t.Amount, t.Type,
		t.PaymentMethod, t.Status, t.CategoryID, t.CreditCardID,
		t.DueDate, t.Notes, id,
	)
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("update transaction: %w", err)
	}
	return t, true, nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transaction rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, limit_total, closing_day, due_day FROM credit_cards ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var out []core.Card
	for rows.Next() {
		var c core.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.LimitTotal, &c.ClosingDay, &c.DueDay); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id string) (core.Card, bool, error) {
	var c core.Card
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, limit_total, closing_day, due_day FROM credit_cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.LimitTotal, &c.ClosingDay, &c.DueDay)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, false, nil
	}
	if err != nil {
		return core.Card{}, false, fmt.Errorf("get card: %w", err)
	}
	return c, true, nil
}

func (r *SQLiteRepository) AddCard(ctx context.Context, c core.Card) (core.Card, error) {
	c.ID = r.newID()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credit_cards (id, name, limit_total, closing_day, due_day)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.LimitTotal, c.ClosingDay, c.DueDay,
	)
	if err != nil {
		return core.Card{}, fmt.Errorf("insert card: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, id string, p core.CardPatch) (core.Card, bool, error) {
	current, ok, err := r.GetCard(ctx, id)
	if err != nil || !ok {
		return core.Card{}, ok, err
	}
	c := p.Apply(current)
	_, err = r.db.ExecContext(ctx,
		`UPDATE credit_cards SET name = ?, limit_total = ?, closing_day = ?, due_day = ? WHERE id = ?`,
		c.Name, c.LimitTotal, c.ClosingDay, c.DueDay, id,
	)
	if err != nil {
		return core.Card{}, false, fmt.Errorf("update card: %w", err)
	}
	return c, true, nil
}

// DeleteCard does not touch transactions referencing the card; the foreign
// key is a weak reference and stays dangling on purpose.
func (r *SQLiteRepository) DeleteCard(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credit_cards WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete card: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete card rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, color, icon FROM categories ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, id string) (core.Category, bool, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, type, color, icon FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, false, nil
	}
	if err != nil {
		return core.Category{}, false, fmt.Errorf("get category: %w", err)
	}
	return c, true, nil
}

// Export-sync bookkeeping. The worker drains transactions whose
// sync_status is still pending and flips them to synced or error.

func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionCols+` FROM transactions
		 WHERE sync_status = 'pending' ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
