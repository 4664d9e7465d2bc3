package activate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Activate(ctx context.Context, userID string) (time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestActivateHandler_ServeHTTP(t *testing.T) {
	ends := time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name           string
		userID         string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			userID: "u1",
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "u1").Return(ends, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Subscription successful","subscriptionEnds":"2024-02-15T09:30:00Z"}`,
		},
		{
			name:   "user not found",
			userID: "u1",
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "u1").Return(time.Time{}, models.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","reason":"user_not_found","error":"user not found"}`,
		},
		{
			name:   "storage error",
			userID: "u1",
			setupMocks: func(s *MockService) {
				s.On("Activate", mock.Anything, "u1").Return(time.Time{}, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","reason":"internal_error","error":"internal error"}`,
		},
		{
			name:           "missing user",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","reason":"unauthorized","error":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMocks(service)
			handler := New(newNoopLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/subscription", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userID != "" {
				ctx = middlewarectx.WithPrincipal(ctx, tt.userID, models.RoleUser)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			service.AssertExpectations(t)
		})
	}
}
