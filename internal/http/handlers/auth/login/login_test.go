package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful login",
			body: `{"username":"testuser","password":"password1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "password1").
					Return("jwt-token-123", &models.User{UID: "user-uuid", Username: "testuser"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token-123"`,
		},
		{
			name:           "invalid json",
			body:           `{bad`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "missing fields",
			body:           `{"username":"testuser"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "invalid credentials",
			body: `{"username":"testuser","password":"wrongpass1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "wrongpass1").
					Return("", nil, models.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid credentials"`,
		},
		{
			name: "service error",
			body: `{"username":"testuser","password":"password1"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "testuser", "password1").
					Return("", nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
