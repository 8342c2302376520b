package service

import (
	"context"
	"errors"
	"fmt"

	"app/internal/model"
	"app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OptimizeResult describes a paid optimization job. All amounts are cents.
type OptimizeResult struct {
	JobID            string
	CostCents        int64
	RemainingBalance int64
}

// PaymentRequest is the descriptor handed back when the balance cannot cover
// the service fee. Nothing is persisted for it; the caller retries after
// paying out of band.
type PaymentRequest struct {
	OrderID        string
	ShortfallCents int64
	PaymentURL     string
}

// BillingService decides how an optimization run is paid for and exposes the
// user-facing ledger reads.
type BillingService interface {
	// Optimize charges the fixed service cost from the user's balance and
	// returns the job descriptor. When the balance is insufficient it returns
	// a PaymentRequest instead; exactly one of the two results is non-nil on
	// success.
	Optimize(ctx context.Context, userID string) (*OptimizeResult, *PaymentRequest, error)
	// GetBalance returns the user's balance in cents
	GetBalance(ctx context.Context, userID string) (int64, error)
	// ListTransactions returns a page of the user's ledger with a total count
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error)
}

type billingService struct {
	userRepo       repository.UserRepository
	ledgerRepo     repository.LedgerRepository
	costCents      int64
	paymentBaseURL string
	billingLogger  zerolog.Logger
}

// NewBillingService creates a new BillingService. costCents is the fixed fee
// charged per optimization run; a real deployment would compute it from the
// job's geometry.
func NewBillingService(
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	costCents int64,
	paymentBaseURL string,
	logger zerolog.Logger,
) BillingService {
	return &billingService{
		userRepo:       userRepo,
		ledgerRepo:     ledgerRepo,
		costCents:      costCents,
		paymentBaseURL: paymentBaseURL,
		billingLogger:  logger.With().Str("service", "BillingService").Logger(),
	}
}

func (s *billingService) Optimize(ctx context.Context, userID string) (*OptimizeResult, *PaymentRequest, error) {
	// The debit re-checks the balance under a row lock, so the decision and
	// the write cannot be split by a concurrent spender.
	balance, err := s.ledgerRepo.Debit(ctx, userID, s.costCents, "Optimization Service Fee")
	switch {
	case err == nil:
		jobID := "job_" + uuid.NewString()
		s.billingLogger.Info().
			Str("user_id", userID).
			Str("job_id", jobID).
			Int64("cost_cents", s.costCents).
			Int64("remaining_balance", balance).
			Msg("Optimization paid from balance")
		return &OptimizeResult{
			JobID:            jobID,
			CostCents:        s.costCents,
			RemainingBalance: balance,
		}, nil, nil

	case errors.Is(err, repository.ErrInsufficientBalance):
		shortfall := s.costCents - balance
		orderID := "ord_" + uuid.NewString()
		payment := &PaymentRequest{
			OrderID:        orderID,
			ShortfallCents: shortfall,
			PaymentURL:     fmt.Sprintf("%s/pay?amount=%d&order_id=%s", s.paymentBaseURL, shortfall, orderID),
		}
		s.billingLogger.Info().
			Str("user_id", userID).
			Str("order_id", orderID).
			Int64("shortfall_cents", shortfall).
			Msg("Optimization requires payment")
		return nil, payment, nil

	case errors.Is(err, repository.ErrUserNotFound):
		return nil, nil, err

	default:
		s.billingLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to debit service fee")
		return nil, nil, err
	}
}

func (s *billingService) GetBalance(ctx context.Context, userID string) (int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.billingLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		return 0, err
	}
	if user == nil {
		return 0, repository.ErrUserNotFound
	}
	return user.Balance, nil
}

func (s *billingService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.billingLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, repository.ErrUserNotFound
	}
	return s.ledgerRepo.ListTransactions(ctx, userID, limit, offset)
}
