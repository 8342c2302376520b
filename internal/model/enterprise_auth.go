package model

import "time"

// Enterprise verification request statuses. A request starts as pending and
// moves to approved (terminal) or rejected. Rejection does not block the user
// from submitting a fresh request.
const (
	AuthStatusPending  = "pending"
	AuthStatusApproved = "approved"
	AuthStatusRejected = "rejected"
)

// EnterpriseAuthRequest represents an enterprise identity verification
// submission awaiting (or past) admin review.
type EnterpriseAuthRequest struct {
	ID              int64     `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	CompanyName     string    `db:"company_name" json:"company_name"`
	CreditCode      string    `db:"credit_code" json:"credit_code"`
	LicenseImageURL string    `db:"license_image_url" json:"license_image_url"`
	Status          string    `db:"status" json:"status"`
	RejectionReason *string   `db:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
