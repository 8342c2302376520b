package handler

import (
	"context"
	"errors"

	"app/internal/api/v1/dto"
	"app/internal/api/v1/operation"
	"app/internal/repository"
	"app/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// BillingHandler implements Huma-based billing and ledger operations
type BillingHandler struct {
	billingService service.BillingService
	validate       *validator.Validate
	currency       string
	logger         zerolog.Logger
}

func NewBillingHandler(billingService service.BillingService, validate *validator.Validate, currency string, logger zerolog.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		validate:       validate,
		currency:       currency,
		logger:         logger,
	}
}

// Optimize runs the mock optimization service, charging the fee from the
// user's balance or demanding out-of-band payment.
func (h *BillingHandler) Optimize(ctx context.Context, input *operation.OptimizeInput) (*operation.OptimizeOutput, error) {
	if err := h.validate.Struct(&input.Body); err != nil {
		return nil, huma.Error400BadRequest("Invalid optimize request", err)
	}

	result, payment, err := h.billingService.Optimize(ctx, input.Body.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, huma.Error404NotFound("User not found. Please register/auth first.")
		}
		h.logger.Error().Err(err).Str("user_id", input.Body.UserID).Msg("Optimize failed")
		return nil, huma.Error500InternalServerError("Transaction failed", err)
	}

	if payment != nil {
		return nil, &PaymentRequiredError{
			Message:    "Insufficient trial credits. Please pay for the service.",
			Shortfall:  float64(payment.ShortfallCents) / 100,
			PaymentURL: payment.PaymentURL,
		}
	}

	return &operation.OptimizeOutput{
		Body: dto.OptimizeResponseDTO{
			JobID:            result.JobID,
			Cost:             float64(result.CostCents) / 100,
			PaidWith:         "balance",
			RemainingBalance: float64(result.RemainingBalance) / 100,
			Status:           "processing",
		},
	}, nil
}

// GetBalance retrieves a user's balance in both minor and major units
func (h *BillingHandler) GetBalance(ctx context.Context, input *operation.GetBalanceInput) (*operation.GetBalanceOutput, error) {
	balance, err := h.billingService.GetBalance(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		h.logger.Error().Err(err).Str("user_id", input.UserID).Msg("Failed to get balance")
		return nil, huma.Error500InternalServerError("Failed to get balance", err)
	}

	return &operation.GetBalanceOutput{
		Body: dto.BalanceResponseDTO{
			BalanceCNY:   float64(balance) / 100,
			BalanceCents: balance,
			Currency:     h.currency,
		},
	}, nil
}

// ListTransactions returns a page of the user's ledger entries
func (h *BillingHandler) ListTransactions(ctx context.Context, input *operation.ListTransactionsInput) (*operation.ListTransactionsOutput, error) {
	transactions, total, err := h.billingService.ListTransactions(ctx, input.UserID, input.Limit, input.Offset)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		h.logger.Error().Err(err).Str("user_id", input.UserID).Msg("Failed to list transactions")
		return nil, huma.Error500InternalServerError("Failed to list transactions", err)
	}

	transactionDTOs := make([]dto.TransactionDTO, 0, len(transactions))
	for _, t := range transactions {
		transactionDTOs = append(transactionDTOs, dto.TransactionDTO{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	return &operation.ListTransactionsOutput{
		Body: dto.TransactionListResponseDTO{
			Transactions: transactionDTOs,
			TotalCount:   total,
		},
	}, nil
}
