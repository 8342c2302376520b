package handler

import (
	"context"
	"errors"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/api/v1/operation"
	"app/internal/repository"
	"app/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// AdminHandler implements Huma-based admin review operations
type AdminHandler struct {
	verificationService service.VerificationService
	licenseStorage      service.LicenseStorageService
	logger              zerolog.Logger
}

func NewAdminHandler(verificationService service.VerificationService, licenseStorage service.LicenseStorageService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		verificationService: verificationService,
		licenseStorage:      licenseStorage,
		logger:              logger,
	}
}

// ListAuthRequests returns verification requests awaiting review
func (h *AdminHandler) ListAuthRequests(ctx context.Context, input *operation.ListAuthRequestsInput) (*operation.ListAuthRequestsOutput, error) {
	requests, err := h.verificationService.ListPending(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list pending auth requests")
		return nil, huma.Error500InternalServerError("Failed to list pending requests", err)
	}

	requestDTOs := make([]dto.EnterpriseAuthRequestDTO, 0, len(requests))
	for _, req := range requests {
		requestDTOs = append(requestDTOs, dto.EnterpriseAuthRequestDTO{
			ID:              req.ID,
			UserID:          req.UserID,
			CompanyName:     req.CompanyName,
			CreditCode:      req.CreditCode,
			LicenseImageURL: h.resolveLicenseURL(ctx, req.LicenseImageURL),
			CreatedAt:       req.CreatedAt,
		})
	}

	return &operation.ListAuthRequestsOutput{
		Body: dto.EnterpriseAuthListResponseDTO{
			Success:  true,
			Requests: requestDTOs,
		},
	}, nil
}

// resolveLicenseURL turns an internal storage path from the upload flow into a
// signed download URL so reviewers can open the image. Externally hosted
// images pass through untouched; on signing failure the raw path is returned.
func (h *AdminHandler) resolveLicenseURL(ctx context.Context, licenseImageURL string) string {
	if !strings.HasPrefix(licenseImageURL, "licenses/") {
		return licenseImageURL
	}
	signed, err := h.licenseStorage.GetDownloadURL(ctx, licenseImageURL)
	if err != nil {
		h.logger.Warn().Err(err).Str("object_key", licenseImageURL).Msg("Failed to sign license download URL")
		return licenseImageURL
	}
	return signed
}

// ReviewAuthRequest approves or rejects a pending verification request
func (h *AdminHandler) ReviewAuthRequest(ctx context.Context, input *operation.ReviewAuthRequestInput) (*operation.ReviewAuthRequestOutput, error) {
	message, err := h.verificationService.Review(ctx, input.Body.AuthID, input.Body.Action, input.Body.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAuthRequestNotFound):
			return nil, huma.Error404NotFound("Auth request not found")
		case errors.Is(err, repository.ErrAlreadyProcessed):
			return nil, huma.Error400BadRequest("Auth request already processed")
		default:
			h.logger.Error().Err(err).Int64("auth_id", input.Body.AuthID).Msg("Failed to review auth request")
			return nil, huma.Error500InternalServerError("Failed to review auth request", err)
		}
	}

	return &operation.ReviewAuthRequestOutput{
		Body: dto.EnterpriseAuthReviewResponseDTO{
			Success: true,
			Message: message,
		},
	}, nil
}
