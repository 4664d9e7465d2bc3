package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		check          CheckerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no checker",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "storage ready",
			check:          func(context.Context) error { return nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok"}`,
		},
		{
			name:           "storage down",
			check:          func(context.Context) error { return errors.New("connection refused") },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"Error","reason":"internal_error","error":"storage unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			New(newNoopLogger(), tt.check).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
