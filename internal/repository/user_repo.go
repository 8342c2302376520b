package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository defines the interface for interacting with user accounts
type UserRepository interface {
	// GetByID retrieves a user by ID, or nil if no such user exists
	GetByID(ctx context.Context, userID string) (*model.User, error)
	// EnsureExists inserts a user with the given email if the ID is unknown.
	// An existing row is left untouched.
	EnsureExists(ctx context.Context, userID, email string) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	query := `
		SELECT id, email, balance, created_at
		FROM users
		WHERE id = $1
	`
	var u model.User
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&u.ID,
		&u.Email,
		&u.Balance,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user by id %s: %w", userID, err)
	}
	return &u, nil
}

func (r *userRepo) EnsureExists(ctx context.Context, userID, email string) error {
	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, userID, email); err != nil {
		return fmt.Errorf("ensuring user %s exists: %w", userID, err)
	}
	return nil
}
