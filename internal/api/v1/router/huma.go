package router

import (
	"app/internal/api/v1/handler"
	"net/http"
	"os"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SetupHumaAPI creates a Huma API instance
func SetupHumaAPI(
	adminAuthMiddleware func(http.Handler) http.Handler,
	logger zerolog.Logger,
) (*chi.Mux, huma.API) {
	// Create Chi router for Huma adapter
	chiRouter := chi.NewRouter()

	// Apply middleware based on path
	chiRouter.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Only admin review endpoints require a token
			if strings.HasPrefix(r.URL.Path, "/api/admin/") {
				adminAuthMiddleware(next).ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	// Get version from environment or default to development
	version := os.Getenv("GIT_COMMIT_SHA")
	if version == "" {
		version = "development"
	}

	// Configure Huma with OpenAPI 3.1
	humaConfig := huma.DefaultConfig("Print Optimization API", version)
	humaConfig.Info.Description = "3D print optimization backend: balance ledger, enterprise verification and billing"

	// Create Huma API with Chi adapter
	api := humachi.New(chiRouter, humaConfig)

	logger.Info().Str("version", version).Msg("Huma API initialized")

	return chiRouter, api
}

// RegisterRoutes registers all Huma operations
func RegisterRoutes(
	api huma.API,
	billingHandler *handler.BillingHandler,
	verificationHandler *handler.VerificationHandler,
	adminHandler *handler.AdminHandler,
	logger zerolog.Logger,
) {
	logger.Info().Msg("Registering routes")

	// ========== BILLING OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "optimize",
		Method:      "POST",
		Path:        "/api/service/optimize",
		Summary:     "Run print optimization",
		Description: "Charges the fixed service fee from the user's balance and enqueues the optimization job, or returns 402 with a payment URL when the balance cannot cover it",
		Tags:        []string{"billing"},
	}, billingHandler.Optimize)

	huma.Register(api, huma.Operation{
		OperationID: "getUserBalance",
		Method:      "GET",
		Path:        "/api/users/{userId}/balance",
		Summary:     "Get user balance",
		Description: "Retrieves the user's current balance in minor and major currency units",
		Tags:        []string{"billing"},
	}, billingHandler.GetBalance)

	huma.Register(api, huma.Operation{
		OperationID: "listUserTransactions",
		Method:      "GET",
		Path:        "/api/users/{userId}/transactions",
		Summary:     "List user transactions",
		Description: "Retrieves a page of the user's ledger entries, newest first",
		Tags:        []string{"billing"},
	}, billingHandler.ListTransactions)

	// ========== ENTERPRISE VERIFICATION OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "submitEnterpriseAuth",
		Method:      "POST",
		Path:        "/api/auth/enterprise",
		Summary:     "Submit enterprise verification",
		Description: "Files an enterprise identity verification request for admin review",
		Tags:        []string{"verification"},
	}, verificationHandler.SubmitEnterpriseAuth)

	huma.Register(api, huma.Operation{
		OperationID: "createLicenseUploadURL",
		Method:      "POST",
		Path:        "/api/auth/enterprise/license-upload-url",
		Summary:     "Get license upload URL",
		Description: "Generates a presigned URL for uploading a business license image",
		Tags:        []string{"verification"},
	}, verificationHandler.CreateLicenseUploadURL)

	// ========== ADMIN OPERATIONS ==========
	huma.Register(api, huma.Operation{
		OperationID: "listAuthRequests",
		Method:      "GET",
		Path:        "/api/admin/auth/list",
		Summary:     "List pending verification requests",
		Description: "Retrieves enterprise verification requests awaiting review",
		Tags:        []string{"admin"},
	}, adminHandler.ListAuthRequests)

	huma.Register(api, huma.Operation{
		OperationID: "reviewAuthRequest",
		Method:      "POST",
		Path:        "/api/admin/auth/review",
		Summary:     "Review a verification request",
		Description: "Approves or rejects a pending verification request; approval grants the trial credit",
		Tags:        []string{"admin"},
	}, adminHandler.ReviewAuthRequest)

	logger.Info().Msg("All operations registered successfully")
}
