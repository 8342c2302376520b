package service

import (
	"context"
	"fmt"
	"strconv"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// defaultRejectionReason is stored when the reviewer gives none.
const defaultRejectionReason = "Rejected by admin"

// Review actions accepted by the admin endpoint.
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

// VerificationService handles enterprise identity verification submissions
// and their admin review.
type VerificationService interface {
	// Submit files a verification request for the user, creating the user
	// with a placeholder email if needed. Returns the new request's ID. On
	// ErrDuplicateAuthRequest the returned ID is the existing request's, when
	// known.
	Submit(ctx context.Context, userID, companyName, creditCode, licenseImageURL string) (int64, error)
	// Review approves or rejects a pending request. Approval grants the trial
	// credit atomically with the status change. Returns a human-readable
	// outcome message.
	Review(ctx context.Context, authID int64, action, reason string) (string, error)
	// ListPending returns requests awaiting review, newest first
	ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error)
}

type verificationService struct {
	userRepo           repository.UserRepository
	authRepo           repository.EnterpriseAuthRepository
	trialGrantCents    int64
	currency           string
	verificationLogger zerolog.Logger
}

// NewVerificationService creates a new VerificationService
func NewVerificationService(
	userRepo repository.UserRepository,
	authRepo repository.EnterpriseAuthRepository,
	trialGrantCents int64,
	currency string,
	logger zerolog.Logger,
) VerificationService {
	return &verificationService{
		userRepo:           userRepo,
		authRepo:           authRepo,
		trialGrantCents:    trialGrantCents,
		currency:           currency,
		verificationLogger: logger.With().Str("service", "VerificationService").Logger(),
	}
}

func (s *verificationService) Submit(ctx context.Context, userID, companyName, creditCode, licenseImageURL string) (int64, error) {
	// MVP convenience: unauthenticated users come into existence on their
	// first submission. A real deployment gates this behind auth.
	if err := s.userRepo.EnsureExists(ctx, userID, userID+"@example.com"); err != nil {
		s.verificationLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to ensure user exists")
		return 0, err
	}

	// Friendly pre-check so the caller gets the existing request's ID back.
	// The partial unique index is the actual guard.
	existing, err := s.authRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		s.verificationLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to look up active auth request")
		return 0, err
	}
	if existing != nil {
		return existing.ID, repository.ErrDuplicateAuthRequest
	}

	req := &model.EnterpriseAuthRequest{
		UserID:          userID,
		CompanyName:     companyName,
		CreditCode:      creditCode,
		LicenseImageURL: licenseImageURL,
	}
	if err := s.authRepo.Create(ctx, req); err != nil {
		// A racing submission may land here via the unique index; the caller
		// sees the same duplicate error either way.
		return 0, err
	}

	s.verificationLogger.Info().
		Str("user_id", userID).
		Int64("auth_id", req.ID).
		Str("company_name", companyName).
		Msg("Enterprise verification submitted")
	return req.ID, nil
}

func (s *verificationService) Review(ctx context.Context, authID int64, action, reason string) (string, error) {
	req, err := s.authRepo.GetByID(ctx, authID)
	if err != nil {
		s.verificationLogger.Error().Err(err).Int64("auth_id", authID).Msg("Failed to get auth request")
		return "", err
	}
	if req == nil {
		return "", repository.ErrAuthRequestNotFound
	}
	if req.Status != model.AuthStatusPending {
		return "", repository.ErrAlreadyProcessed
	}

	switch action {
	case ReviewActionReject:
		if reason == "" {
			reason = defaultRejectionReason
		}
		if err := s.authRepo.Reject(ctx, authID, reason); err != nil {
			return "", err
		}
		s.verificationLogger.Info().Int64("auth_id", authID).Str("reason", reason).Msg("Enterprise verification rejected")
		return "Application rejected", nil

	case ReviewActionApprove:
		newBalance, err := s.authRepo.ApproveAndGrant(ctx, authID, req.UserID, s.trialGrantCents, "Enterprise Verification Approved")
		if err != nil {
			return "", err
		}
		s.verificationLogger.Info().
			Int64("auth_id", authID).
			Str("user_id", req.UserID).
			Int64("grant_cents", s.trialGrantCents).
			Int64("new_balance", newBalance).
			Msg("Enterprise verification approved, trial credit granted")
		// No trailing zeros: 20000 cents reads "200", not "200.00".
		amount := strconv.FormatFloat(float64(s.trialGrantCents)/100, 'f', -1, 64)
		return fmt.Sprintf("Approved and %s %s trial credit granted", amount, s.currency), nil

	default:
		return "", fmt.Errorf("invalid review action: %s", action)
	}
}

func (s *verificationService) ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error) {
	requests, err := s.authRepo.ListPending(ctx)
	if err != nil {
		s.verificationLogger.Error().Err(err).Msg("Failed to list pending auth requests")
		return nil, err
	}
	return requests, nil
}
