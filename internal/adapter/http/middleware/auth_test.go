package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bankdash/bank-system/internal/adapter/http/middleware"
	"github.com/bankdash/bank-system/internal/auth"
)

func TestAuthRejectsMissingHeader(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := middleware.Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthRejectsMalformedToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := middleware.Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthInjectsUserID(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	token, err := tokens.Generate("user-42")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotUserID string
	handler := middleware.Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = middleware.UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-42" {
		t.Fatalf("expected user id user-42 in context, got %q", gotUserID)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	token, err := expired.Generate("user-42")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	handler := middleware.Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
