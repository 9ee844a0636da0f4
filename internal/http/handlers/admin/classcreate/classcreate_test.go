package classcreate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/videoclass/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateClass(ctx context.Context, in models.ClassInput) (*models.Class, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*models.Class)
	return res, args.Error(1)
}

const recordedBody = `{"title":"Intro","description":"d","instructor":"Jane","type":"recorded","videoUrl":"https://v/1","duration":"1h","category":"music"}`

func TestClassCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		body        string
		callService bool
		mockErr     error
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "recorded class created",
			body:        recordedBody,
			callService: true,
			wantStatus:  http.StatusCreated,
			wantBody:    `"_id":"c-1"`,
		},
		{
			name:       "live class without schedule",
			body:       `{"title":"Live","description":"d","instructor":"Jane","type":"live","videoUrl":"https://v/2","duration":"1h","category":"music"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"field":"schedule","message":"schedule is required for live classes"}]}`,
		},
		{
			name:        "live class with schedule",
			body:        `{"title":"Live","description":"d","instructor":"Jane","type":"live","videoUrl":"https://v/2","duration":"1h","category":"music","schedule":"2026-05-01T18:00:00Z"}`,
			callService: true,
			wantStatus:  http.StatusCreated,
			wantBody:    `"_id":"c-1"`,
		},
		{
			name:        "recorded class with empty schedule",
			body:        `{"title":"Intro","description":"d","instructor":"Jane","type":"recorded","videoUrl":"https://v/1","duration":"1h","category":"music","schedule":""}`,
			callService: true,
			wantStatus:  http.StatusCreated,
			wantBody:    `"_id":"c-1"`,
		},
		{
			name:        "live class from datetime-local input",
			body:        `{"title":"Live","description":"d","instructor":"Jane","type":"live","videoUrl":"https://v/2","duration":"1h","category":"music","schedule":"2026-11-01T18:00"}`,
			callService: true,
			wantStatus:  http.StatusCreated,
			wantBody:    `"_id":"c-1"`,
		},
		{
			name:       "live class with empty schedule",
			body:       `{"title":"Live","description":"d","instructor":"Jane","type":"live","videoUrl":"https://v/2","duration":"1h","category":"music","schedule":""}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"field":"schedule","message":"schedule is required for live classes"}]}`,
		},
		{
			name:       "unparseable schedule",
			body:       `{"title":"Live","description":"d","instructor":"Jane","type":"live","videoUrl":"https://v/2","duration":"1h","category":"music","schedule":"tomorrow"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:       "unknown type",
			body:       `{"title":"X","description":"d","instructor":"Jane","type":"webinar","videoUrl":"https://v/3","duration":"1h","category":"music"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"errors":[{"field":"type","message":"type must be one of: live recorded"}]}`,
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"Invalid request body"}`,
		},
		{
			name:        "storage failure",
			body:        recordedBody,
			callService: true,
			mockErr:     errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"message":"Server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.callService {
				var res *models.Class
				if tt.mockErr == nil {
					res = &models.Class{ID: "c-1", EnrolledStudents: []string{}}
				}
				svc.On("CreateClass", mock.Anything, mock.AnythingOfType("models.ClassInput")).Return(res, tt.mockErr).Once()
			}
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/classes", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}
