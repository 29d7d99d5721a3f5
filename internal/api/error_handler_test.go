package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmarket/farmarket-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "bad_request"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "bad_request"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"bad token", domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "not_found"},
		{"category missing", domain.ErrCategoryNotFound, http.StatusNotFound, "not_found"},
		{"product missing", domain.ErrProductNotFound, http.StatusNotFound, "not_found"},
		{"email taken", domain.ErrEmailTaken, http.StatusConflict, "conflict"},
		{"category in use", domain.ErrCategoryInUse, http.StatusConflict, "conflict"},
		{"media failure", domain.ErrMediaStorage, http.StatusInternalServerError, "internal"},
		{"wrapped", fmt.Errorf("quantity: %w", domain.ErrInvalidInput), http.StatusBadRequest, "bad_request"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, resp.Error)
			}
			if resp.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestHTTPErrorHandler_UnknownErrorHidesCause(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("connection string leaked"), c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "internal server error" {
		t.Fatalf("internal causes must not leak, got %q", resp.Message)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusBadRequest, "name is required"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "name is required" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}
