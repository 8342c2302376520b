package model

import "time"

// User represents an account in the system. Balance is the spendable credit
// in integer cents; it never goes negative because the only debit path
// re-checks the balance under a row lock.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
