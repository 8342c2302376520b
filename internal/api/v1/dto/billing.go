package dto

import "time"

type OptimizeRequestDTO struct {
	UserID     string `json:"user_id" validate:"required" minLength:"1" doc:"User paying for the optimization run"`
	STLFileURL string `json:"stl_file_url" validate:"required,url" format:"uri" doc:"Location of the STL model to optimize"`
}

type OptimizeResponseDTO struct {
	JobID            string  `json:"job_id"`
	Cost             float64 `json:"cost" doc:"Amount charged, in major currency units"`
	PaidWith         string  `json:"paid_with" enum:"balance,payment"`
	RemainingBalance float64 `json:"remaining_balance" doc:"Balance after the charge, in major currency units"`
	Status           string  `json:"status"`
}

type BalanceResponseDTO struct {
	BalanceCNY   float64 `json:"balance_cny"`
	BalanceCents int64   `json:"balance_cents"`
	Currency     string  `json:"currency"`
}

type TransactionDTO struct {
	ID          int64     `json:"id"`
	Amount      int64     `json:"amount" doc:"Signed cents; negative for debits"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TransactionListResponseDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	TotalCount   int              `json:"total_count"`
}
