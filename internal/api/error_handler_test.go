package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/university/admin-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"token revoked", domain.ErrTokenRevoked, http.StatusUnauthorized, "Token revoked"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "Username or email already in use"},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, "Passwords do not match"},
		{"wrong password", domain.ErrWrongPassword, http.StatusBadRequest, "Current password is incorrect"},
		{"student not found", domain.ErrStudentNotFound, http.StatusNotFound, "Student not found"},
		{"duplicate student", domain.ErrDuplicateStudent, http.StatusConflict, "Student already exists"},
		{"course not found", domain.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
		{"unexpected", errors.New("driver exploded"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := NewHTTPErrorHandler(zerolog.Nop())
			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["message"] != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, resp["message"])
			}
		})
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(echo.NewHTTPError(http.StatusBadRequest, "cin must contain exactly 8 characters"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "cin must contain exactly 8 characters" {
		t.Fatalf("unexpected message %q", resp["message"])
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusOK); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Fatalf("committed response must not be overwritten, got %d", rec.Code)
	}
}
