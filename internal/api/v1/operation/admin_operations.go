package operation

import "app/internal/api/v1/dto"

// Admin Review Operations

type ListAuthRequestsInput struct {
	// No input needed - only pending requests are listed
}

type ListAuthRequestsOutput struct {
	Body dto.EnterpriseAuthListResponseDTO `json:"body"`
}

type ReviewAuthRequestInput struct {
	Body dto.EnterpriseAuthReviewDTO `json:"body"`
}

type ReviewAuthRequestOutput struct {
	Body dto.EnterpriseAuthReviewResponseDTO `json:"body"`
}
