package dto

import "time"

type EnterpriseAuthReviewDTO struct {
	AuthID int64  `json:"auth_id" validate:"required,gt=0" minimum:"1" doc:"Verification request to review"`
	Action string `json:"action" validate:"required,oneof=approve reject" enum:"approve,reject"`
	Reason string `json:"reason,omitempty" doc:"Rejection reason; a default is stored when omitted"`
}

type EnterpriseAuthReviewResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type EnterpriseAuthRequestDTO struct {
	ID              int64     `json:"id"`
	UserID          string    `json:"user_id"`
	CompanyName     string    `json:"company_name"`
	CreditCode      string    `json:"credit_code"`
	LicenseImageURL string    `json:"license_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

type EnterpriseAuthListResponseDTO struct {
	Success  bool                       `json:"success"`
	Requests []EnterpriseAuthRequestDTO `json:"requests"`
}
