package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fincas/models"
)

func TestTokenRoundtrip(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{
		ID:        7,
		Email:     "ana@fincas.local",
		CompanyID: "company1",
	}

	token, err := GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "ana@fincas.local" || claims.CompanyID != "company1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 7, Email: "ana@fincas.local"}
	token, err := GenerateToken(user, -time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestAuthMiddlewareUnauthorizedIsJSON(t *testing.T) {
	SetJWTSecret("test-secret")

	handler := AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("protected handler reached without a token")
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{name: "no token", setup: func(r *http.Request) {}},
		{name: "garbage token", setup: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if body := rec.Body.String(); body != `{"error":"unauthorized"}` {
				t.Errorf("body = %q", body)
			}
		})
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 7, Email: "ana@fincas.local"}
	token, err := GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	SetJWTSecret("another-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}
