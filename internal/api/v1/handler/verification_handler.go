package handler

import (
	"context"
	"errors"
	"fmt"

	"app/internal/api/v1/dto"
	"app/internal/api/v1/operation"
	"app/internal/repository"
	"app/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// VerificationHandler implements Huma-based enterprise verification operations
type VerificationHandler struct {
	verificationService service.VerificationService
	licenseStorage      service.LicenseStorageService
	validate            *validator.Validate
	logger              zerolog.Logger
}

func NewVerificationHandler(
	verificationService service.VerificationService,
	licenseStorage service.LicenseStorageService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		licenseStorage:      licenseStorage,
		validate:            validate,
		logger:              logger,
	}
}

// SubmitEnterpriseAuth files an enterprise verification request for review
func (h *VerificationHandler) SubmitEnterpriseAuth(ctx context.Context, input *operation.SubmitEnterpriseAuthInput) (*operation.SubmitEnterpriseAuthOutput, error) {
	if err := h.validate.Struct(&input.Body); err != nil {
		return nil, huma.Error400BadRequest("Invalid enterprise verification request", err)
	}

	authID, err := h.verificationService.Submit(ctx,
		input.Body.UserID,
		input.Body.CompanyName,
		input.Body.CreditCode,
		input.Body.LicenseImageURL,
	)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAuthRequest) {
			msg := "Authentication already pending or approved"
			if authID != 0 {
				msg = fmt.Sprintf("%s (existing request %d)", msg, authID)
			}
			return nil, huma.Error400BadRequest(msg)
		}
		h.logger.Error().Err(err).Str("user_id", input.Body.UserID).Msg("Failed to submit enterprise verification")
		return nil, huma.Error500InternalServerError("Failed to submit enterprise verification", err)
	}

	return &operation.SubmitEnterpriseAuthOutput{
		Body: dto.EnterpriseAuthSubmitResponseDTO{
			Success: true,
			Message: "Enterprise verification submitted. Waiting for review.",
			AuthID:  authID,
		},
	}, nil
}

// CreateLicenseUploadURL hands out a presigned PUT URL for a license image
func (h *VerificationHandler) CreateLicenseUploadURL(ctx context.Context, input *operation.CreateLicenseUploadURLInput) (*operation.CreateLicenseUploadURLOutput, error) {
	if err := h.validate.Struct(&input.Body); err != nil {
		return nil, huma.Error400BadRequest("Invalid upload URL request", err)
	}

	uploadURL, storagePath, err := h.licenseStorage.CreateUploadURL(ctx, input.Body.UserID, input.Body.Filename)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", input.Body.UserID).Msg("Failed to create license upload URL")
		return nil, huma.Error500InternalServerError("Failed to create upload URL", err)
	}

	return &operation.CreateLicenseUploadURLOutput{
		Body: dto.LicenseUploadURLResponseDTO{
			UploadURL:   uploadURL,
			StoragePath: storagePath,
		},
	}, nil
}
