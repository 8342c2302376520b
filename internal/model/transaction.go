package model

import "time"

// Transaction types recorded in the ledger.
const (
	TransactionTypeUsage      = "usage"
	TransactionTypeTrialGrant = "trial_grant"
)

// Transaction is one append-only ledger entry. Amount is signed cents:
// negative for debits, positive for credits. Rows are written in the same
// database transaction as the balance change they describe, so the sum of a
// user's amounts always equals their current balance.
type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Amount      int64     `db:"amount" json:"amount"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
