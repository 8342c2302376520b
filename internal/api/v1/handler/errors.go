package handler

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func init() {
	// The API contract reports schema validation failures as plain 400s
	// rather than huma's default 422.
	newError := huma.NewError
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		return newError(status, message, errs...)
	}
}

// PaymentRequiredError is returned when the balance cannot cover the service
// fee. It implements huma.StatusError so the 402 body carries the shortfall
// and payment URL fields clients act on.
type PaymentRequiredError struct {
	Message    string  `json:"message"`
	Shortfall  float64 `json:"shortfall" doc:"Missing amount in major currency units"`
	PaymentURL string  `json:"payment_url"`
}

func (e *PaymentRequiredError) Error() string {
	return e.Message
}

func (e *PaymentRequiredError) GetStatus() int {
	return http.StatusPaymentRequired
}
