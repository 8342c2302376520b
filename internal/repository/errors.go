package repository

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrAuthRequestNotFound  = errors.New("auth request not found")
	ErrDuplicateAuthRequest = errors.New("authentication already pending or approved")
	ErrAlreadyProcessed     = errors.New("auth request already processed")
)
