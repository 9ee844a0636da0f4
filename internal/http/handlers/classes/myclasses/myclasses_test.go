package myclasses

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/videoclass/internal/http/middlewarectx"
	"github.com/magabrotheeeer/videoclass/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) MyClasses(ctx context.Context, userID string) ([]*models.Class, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).([]*models.Class)
	return res, args.Error(1)
}

func TestMyClassesHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("MyClasses", mock.Anything, "u-1").Return([]*models.Class{
		{ID: "c-2", Title: "Newer", EnrolledStudents: []string{"u-1"}},
		{ID: "c-1", Title: "Older", EnrolledStudents: []string{"u-1", "u-2"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/classes", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "u-1"))
	rec := httptest.NewRecorder()

	New(logger, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "c-2", got[0].ID)
	assert.Equal(t, []string{"u-1", "u-2"}, got[1].EnrolledStudents)
	svc.AssertExpectations(t)
}

func TestMyClassesHandler_Empty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("MyClasses", mock.Anything, "u-1").Return([]*models.Class{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/classes", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "u-1"))
	rec := httptest.NewRecorder()

	New(logger, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
