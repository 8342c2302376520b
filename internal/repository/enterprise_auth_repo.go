package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code raised by the partial unique
// index guarding one non-rejected request per user.
const uniqueViolation = "23505"

// EnterpriseAuthRepository defines the interface for interacting with
// enterprise verification requests
type EnterpriseAuthRepository interface {
	// Create inserts a pending request and fills in its ID and CreatedAt.
	// Returns ErrDuplicateAuthRequest if the user already has a non-rejected
	// request.
	Create(ctx context.Context, req *model.EnterpriseAuthRequest) error
	// GetByID retrieves a request by ID, or nil if no such request exists
	GetByID(ctx context.Context, id int64) (*model.EnterpriseAuthRequest, error)
	// FindActiveByUser returns the user's pending or approved request, or nil
	FindActiveByUser(ctx context.Context, userID string) (*model.EnterpriseAuthRequest, error)
	// ListPending returns pending requests, newest first
	ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error)
	// Reject marks a pending request rejected with the given reason.
	// Returns ErrAlreadyProcessed if the request is no longer pending.
	Reject(ctx context.Context, id int64, reason string) error
	// ApproveAndGrant marks a pending request approved, credits the user's
	// balance by grant cents and appends a trial_grant transaction, all in
	// one database transaction. Returns the user's new balance.
	ApproveAndGrant(ctx context.Context, id int64, userID string, grant int64, description string) (int64, error)
}

type enterpriseAuthRepo struct {
	pool *pgxpool.Pool
}

// NewEnterpriseAuthRepo creates a new EnterpriseAuthRepository
func NewEnterpriseAuthRepo(pool *pgxpool.Pool) EnterpriseAuthRepository {
	return &enterpriseAuthRepo{pool: pool}
}

func (r *enterpriseAuthRepo) Create(ctx context.Context, req *model.EnterpriseAuthRequest) error {
	query := `
		INSERT INTO enterprise_auth (user_id, company_name, credit_code, license_image_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		req.UserID, req.CompanyName, req.CreditCode, req.LicenseImageURL, model.AuthStatusPending,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateAuthRequest
		}
		return fmt.Errorf("creating auth request for user %s: %w", req.UserID, err)
	}
	req.Status = model.AuthStatusPending
	return nil
}

func (r *enterpriseAuthRepo) GetByID(ctx context.Context, id int64) (*model.EnterpriseAuthRequest, error) {
	query := `
		SELECT id, user_id, company_name, credit_code, license_image_url, status, rejection_reason, created_at
		FROM enterprise_auth
		WHERE id = $1
	`
	var req model.EnterpriseAuthRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.UserID,
		&req.CompanyName,
		&req.CreditCode,
		&req.LicenseImageURL,
		&req.Status,
		&req.RejectionReason,
		&req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting auth request by id %d: %w", id, err)
	}
	return &req, nil
}

func (r *enterpriseAuthRepo) FindActiveByUser(ctx context.Context, userID string) (*model.EnterpriseAuthRequest, error) {
	query := `
		SELECT id, user_id, company_name, credit_code, license_image_url, status, rejection_reason, created_at
		FROM enterprise_auth
		WHERE user_id = $1 AND status <> $2
		LIMIT 1
	`
	var req model.EnterpriseAuthRequest
	err := r.pool.QueryRow(ctx, query, userID, model.AuthStatusRejected).Scan(
		&req.ID,
		&req.UserID,
		&req.CompanyName,
		&req.CreditCode,
		&req.LicenseImageURL,
		&req.Status,
		&req.RejectionReason,
		&req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding active auth request for user %s: %w", userID, err)
	}
	return &req, nil
}

func (r *enterpriseAuthRepo) ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error) {
	query := `
		SELECT id, user_id, company_name, credit_code, license_image_url, status, rejection_reason, created_at
		FROM enterprise_auth
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, model.AuthStatusPending)
	if err != nil {
		return nil, fmt.Errorf("querying pending auth requests: %w", err)
	}
	defer rows.Close()

	var requests []model.EnterpriseAuthRequest
	for rows.Next() {
		var req model.EnterpriseAuthRequest
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.CompanyName,
			&req.CreditCode,
			&req.LicenseImageURL,
			&req.Status,
			&req.RejectionReason,
			&req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning auth request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating auth request rows: %w", err)
	}

	if len(requests) == 0 {
		return []model.EnterpriseAuthRequest{}, nil
	}
	return requests, nil
}

func (r *enterpriseAuthRepo) Reject(ctx context.Context, id int64, reason string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enterprise_auth SET status = $1, rejection_reason = $2 WHERE id = $3 AND status = $4`,
		model.AuthStatusRejected, reason, id, model.AuthStatusPending,
	)
	if err != nil {
		return fmt.Errorf("rejecting auth request %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyProcessed
	}
	return nil
}

func (r *enterpriseAuthRepo) ApproveAndGrant(ctx context.Context, id int64, userID string, grant int64, description string) (int64, error) {
	if grant <= 0 {
		return 0, fmt.Errorf("grant amount must be positive, got %d", grant)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning approval transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The status guard keeps a concurrent double-review from granting twice.
	tag, err := tx.Exec(ctx,
		`UPDATE enterprise_auth SET status = $1 WHERE id = $2 AND status = $3`,
		model.AuthStatusApproved, id, model.AuthStatusPending,
	)
	if err != nil {
		return 0, fmt.Errorf("approving auth request %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrAlreadyProcessed
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`,
		grant, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("granting trial credit to user %s: %w", userID, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (user_id, amount, type, description) VALUES ($1, $2, $3, $4)`,
		userID, grant, model.TransactionTypeTrialGrant, description,
	); err != nil {
		return 0, fmt.Errorf("inserting trial_grant transaction for user %s: %w", userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing approval for auth request %d: %w", id, err)
	}
	return newBalance, nil
}
