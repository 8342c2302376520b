package operation

import "app/internal/api/v1/dto"

// Billing Operations

type OptimizeInput struct {
	Body dto.OptimizeRequestDTO `json:"body"`
}

type OptimizeOutput struct {
	Body dto.OptimizeResponseDTO `json:"body"`
}

type GetBalanceInput struct {
	UserID string `path:"userId" doc:"User ID"`
}

type GetBalanceOutput struct {
	Body dto.BalanceResponseDTO `json:"body"`
}

type ListTransactionsInput struct {
	UserID string `path:"userId" doc:"User ID"`
	Limit  int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Number of transactions to return"`
	Offset int    `query:"offset" default:"0" minimum:"0" doc:"Offset for pagination"`
}

type ListTransactionsOutput struct {
	Body dto.TransactionListResponseDTO `json:"body"`
}
