package login

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gymadmin/internal/models"
	"github.com/magabrotheeeer/gymadmin/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, creds models.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	creds := models.Credentials{Email: "admin@gym.ru", Password: "secret"}

	tests := []struct {
		name           string
		body           string
		mockToken      string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "valid login",
			body:           `{"email":"admin@gym.ru","password":"secret"}`,
			mockToken:      "tok",
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantBody:       `{"token":"tok"}`,
		},
		{
			name:           "invalid credentials",
			body:           `{"email":"admin@gym.ru","password":"secret"}`,
			mockErr:        auth.ErrInvalidCredentials,
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       `{"status":"Error","error":"invalid credentials"}`,
		},
		{
			name:           "service failure",
			body:           `{"email":"admin@gym.ru","password":"secret"}`,
			mockErr:        errors.New("db down"),
			callService:    true,
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"status":"Error","error":"could not log in"}`,
		},
		{
			name:           "invalid json body",
			body:           "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"non_field_errors":["invalid request body"]}`,
		},
		{
			name:           "missing password",
			body:           `{"email":"admin@gym.ru"}`,
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"password":["This field is required."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(AuthServiceMock)
			if tt.callService {
				svc.On("Login", mock.Anything, creds).Return(tt.mockToken, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
