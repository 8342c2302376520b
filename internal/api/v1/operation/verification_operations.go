package operation

import "app/internal/api/v1/dto"

// Enterprise Verification Operations

type SubmitEnterpriseAuthInput struct {
	Body dto.EnterpriseAuthSubmitDTO `json:"body"`
}

type SubmitEnterpriseAuthOutput struct {
	Body dto.EnterpriseAuthSubmitResponseDTO `json:"body"`
}

type CreateLicenseUploadURLInput struct {
	Body dto.LicenseUploadURLRequestDTO `json:"body"`
}

type CreateLicenseUploadURLOutput struct {
	Body dto.LicenseUploadURLResponseDTO `json:"body"`
}
