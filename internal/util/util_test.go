package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestValidateAdminJWT(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	parsed, err := ValidateAdminJWT(token, secret)
	if err != nil {
		t.Fatalf("ValidateAdminJWT returned error: %v", err)
	}
	if parsed.Role != "admin" {
		t.Errorf("expected role admin, got %q", parsed.Role)
	}
	if parsed.Subject != "admin-1" {
		t.Errorf("expected subject admin-1, got %q", parsed.Subject)
	}
}

func TestValidateAdminJWTWrongSecret(t *testing.T) {
	claims := Claims{Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret-a"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if _, err := ValidateAdminJWT(token, "secret-b"); err == nil {
		t.Fatal("expected an error for a token signed with a different secret")
	}
}

func TestValidateAdminJWTExpired(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if _, err := ValidateAdminJWT(token, secret); err == nil {
		t.Fatal("expected an error for an expired token")
	}
}

func TestValidateAdminJWTRejectsNonHMAC(t *testing.T) {
	// alg=none tokens must not pass.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if _, err := ValidateAdminJWT(token, "test-secret"); err == nil {
		t.Fatal("expected an error for a token without an HMAC signature")
	}
}
