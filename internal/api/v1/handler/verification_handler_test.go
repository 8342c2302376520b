package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"app/internal/api/v1/dto"
	"app/internal/repository"
	"app/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func newVerificationTestAPI(t *testing.T, svc service.VerificationService, storage service.LicenseStorageService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	h := NewVerificationHandler(svc, storage, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	huma.Register(api, huma.Operation{
		OperationID: "submitEnterpriseAuth",
		Method:      "POST",
		Path:        "/api/auth/enterprise",
	}, h.SubmitEnterpriseAuth)
	huma.Register(api, huma.Operation{
		OperationID: "createLicenseUploadURL",
		Method:      "POST",
		Path:        "/api/auth/enterprise/license-upload-url",
	}, h.CreateLicenseUploadURL)
	return api
}

func TestSubmitEnterpriseAuthEndpoint(t *testing.T) {
	api := newVerificationTestAPI(t, &fakeVerificationService{authID: 7}, &fakeLicenseStorage{})

	resp := api.Post("/api/auth/enterprise", map[string]any{
		"user_id":           "u1",
		"company_name":      "Acme 3D Printing Co",
		"credit_code":       "913100006000000000",
		"license_image_url": "https://storage.example.com/license.jpg",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body dto.EnterpriseAuthSubmitResponseDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success true")
	}
	if body.Message != "Enterprise verification submitted. Waiting for review." {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.AuthID != 7 {
		t.Errorf("expected auth ID 7, got %d", body.AuthID)
	}
}

func TestSubmitEnterpriseAuthEndpointDuplicate(t *testing.T) {
	api := newVerificationTestAPI(t, &fakeVerificationService{authID: 7, err: repository.ErrDuplicateAuthRequest}, &fakeLicenseStorage{})

	resp := api.Post("/api/auth/enterprise", map[string]any{
		"user_id":           "u1",
		"company_name":      "Acme 3D Printing Co",
		"credit_code":       "913100006000000000",
		"license_image_url": "https://storage.example.com/license.jpg",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "Authentication already pending or approved") {
		t.Errorf("expected duplicate message, got %s", resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "existing request 7") {
		t.Errorf("expected the existing request ID in the message, got %s", resp.Body.String())
	}
}

func TestSubmitEnterpriseAuthEndpointBadCreditCode(t *testing.T) {
	svc := &fakeVerificationService{authID: 7}
	api := newVerificationTestAPI(t, svc, &fakeLicenseStorage{})

	resp := api.Post("/api/auth/enterprise", map[string]any{
		"user_id":           "u1",
		"company_name":      "Acme 3D Printing Co",
		"credit_code":       "too-short",
		"license_image_url": "https://storage.example.com/license.jpg",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.submitCalls != 0 {
		t.Errorf("expected validation to fail before the service is called, got %d calls", svc.submitCalls)
	}
}

func TestCreateLicenseUploadURLEndpoint(t *testing.T) {
	api := newVerificationTestAPI(t, &fakeVerificationService{}, &fakeLicenseStorage{})

	resp := api.Post("/api/auth/enterprise/license-upload-url", map[string]any{
		"user_id":  "u1",
		"filename": "license.jpg",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body dto.LicenseUploadURLResponseDTO
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.UploadURL == "" {
		t.Error("expected a non-empty upload URL")
	}
	if !strings.HasPrefix(body.StoragePath, "licenses/u1/") {
		t.Errorf("expected storage path under licenses/u1/, got %q", body.StoragePath)
	}
}
