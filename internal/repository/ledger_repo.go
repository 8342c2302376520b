package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository moves money. A balance change and the transaction row that
// records it always commit in the same database transaction, so the ledger
// stays consistent with the balances.
type LedgerRepository interface {
	// Debit locks the user row, re-checks the balance, decreases it by amount
	// and appends a negative usage transaction. It returns the balance after
	// the debit; on ErrInsufficientBalance it returns the unchanged balance.
	Debit(ctx context.Context, userID string, amount int64, description string) (int64, error)
	// Credit increases the balance by amount and appends a positive
	// transaction of the given type. Returns the new balance.
	Credit(ctx context.Context, userID string, amount int64, txType, description string) (int64, error)
	// ListTransactions returns a page of the user's ledger, newest first,
	// along with the total number of entries.
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error)
}

type ledgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepo creates a new LedgerRepository
func NewLedgerRepo(pool *pgxpool.Pool) LedgerRepository {
	return &ledgerRepo{pool: pool}
}

func (r *ledgerRepo) Debit(ctx context.Context, userID string, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning debit transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the row so concurrent debits serialize per user.
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("locking user %s: %w", userID, err)
	}
	if balance < amount {
		return balance, ErrInsufficientBalance
	}

	newBalance := balance - amount
	if _, err := tx.Exec(ctx, `UPDATE users SET balance = $1 WHERE id = $2`, newBalance, userID); err != nil {
		return 0, fmt.Errorf("updating balance for user %s: %w", userID, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (user_id, amount, type, description) VALUES ($1, $2, $3, $4)`,
		userID, -amount, model.TransactionTypeUsage, description,
	); err != nil {
		return 0, fmt.Errorf("inserting usage transaction for user %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing debit for user %s: %w", userID, err)
	}
	return newBalance, nil
}

func (r *ledgerRepo) Credit(ctx context.Context, userID string, amount int64, txType, description string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning credit transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("crediting user %s: %w", userID, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (user_id, amount, type, description) VALUES ($1, $2, $3, $4)`,
		userID, amount, txType, description,
	); err != nil {
		return 0, fmt.Errorf("inserting %s transaction for user %s: %w", txType, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing credit for user %s: %w", userID, err)
	}
	return newBalance, nil
}

func (r *ledgerRepo) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions for user %s: %w", userID, err)
	}

	query := `
		SELECT id, user_id, amount, type, description, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transaction rows: %w", err)
	}

	if len(transactions) == 0 {
		return []model.Transaction{}, total, nil
	}
	return transactions, total, nil
}
