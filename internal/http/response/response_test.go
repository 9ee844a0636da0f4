package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/videoclass/internal/lib/apperr"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestValidationError(t *testing.T) {
	v := models.NewValidator()
	err := v.Struct(models.RegisterRequest{Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "password", Message: "password must be at least 6 characters"},
	}, resp.Errors)
}

func TestValidationError_LiveSchedule(t *testing.T) {
	v := models.NewValidator()
	err := v.Struct(models.ClassInput{
		Title: "t", Description: "d", Instructor: "i", Type: models.ClassTypeLive,
		VideoURL: "v", Duration: "1h", Category: "c",
	})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, []FieldError{{Field: "schedule", Message: "schedule is required for live classes"}}, resp.Errors)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: apperr.Validation("bad"), want: http.StatusBadRequest},
		{err: apperr.Auth("creds"), want: http.StatusUnauthorized},
		{err: apperr.Forbidden("role"), want: http.StatusForbidden},
		{err: apperr.NotFound("missing"), want: http.StatusNotFound},
		{err: apperr.Conflict("dup"), want: http.StatusConflict},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(fmt.Errorf("op: %w", tt.err)), "err %v", tt.err)
	}
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("services.catalog.Get: %w", apperr.NotFound("Class not found")),
			wantStatus: http.StatusNotFound,
			wantBody:   "Class not found",
		},
		{
			name:       "internal error text is hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			RenderError(rec, req, newNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var got MessageResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantBody, got.Message)
		})
	}
}

func TestRenderInvalid(t *testing.T) {
	t.Run("decode error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RenderInvalid(rec, httptest.NewRequest(http.MethodPost, "/", nil), newNoopLogger(), errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
	})

	t.Run("validation errors", func(t *testing.T) {
		err := models.NewValidator().Struct(models.LoginRequest{Email: "ann@x.com"})
		rec := httptest.NewRecorder()
		RenderInvalid(rec, httptest.NewRequest(http.MethodPost, "/", nil), newNoopLogger(), err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"errors":[{"field":"password","message":"password is required"}]}`, rec.Body.String())
	})
}
