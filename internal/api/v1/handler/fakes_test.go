package handler

import (
	"context"
	"fmt"

	"app/internal/model"
	"app/internal/service"
)

// fakeBillingService returns canned results so handler tests exercise only
// status mapping and response shaping.
type fakeBillingService struct {
	result  *service.OptimizeResult
	payment *service.PaymentRequest
	err     error

	balance int64
	txs     []model.Transaction

	optimizeCalls int
}

func (f *fakeBillingService) Optimize(ctx context.Context, userID string) (*service.OptimizeResult, *service.PaymentRequest, error) {
	f.optimizeCalls++
	return f.result, f.payment, f.err
}

func (f *fakeBillingService) GetBalance(ctx context.Context, userID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.balance, nil
}

func (f *fakeBillingService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]model.Transaction, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.txs, len(f.txs), nil
}

type fakeVerificationService struct {
	authID  int64
	message string
	err     error
	pending []model.EnterpriseAuthRequest

	submitCalls int
}

func (f *fakeVerificationService) Submit(ctx context.Context, userID, companyName, creditCode, licenseImageURL string) (int64, error) {
	f.submitCalls++
	return f.authID, f.err
}

func (f *fakeVerificationService) Review(ctx context.Context, authID int64, action, reason string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

func (f *fakeVerificationService) ListPending(ctx context.Context) ([]model.EnterpriseAuthRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pending, nil
}

type fakeLicenseStorage struct {
	err error
}

func (f *fakeLicenseStorage) CreateUploadURL(ctx context.Context, userID, filename string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	path := fmt.Sprintf("licenses/%s/object.jpg", userID)
	return "https://s3.example.com/" + path + "?signed", path, nil
}

func (f *fakeLicenseStorage) GetDownloadURL(ctx context.Context, storagePath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.example.com/" + storagePath + "?signed", nil
}

// Keep the fakes honest against the service interfaces.
var (
	_ service.BillingService        = (*fakeBillingService)(nil)
	_ service.VerificationService   = (*fakeVerificationService)(nil)
	_ service.LicenseStorageService = (*fakeLicenseStorage)(nil)
)
