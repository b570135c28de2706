package update

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/museum-catalog/internal/models"
	museumsvc "github.com/magabrotheeeer/museum-catalog/internal/services/museum"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, uid, category, title, subtitle string, image *museumsvc.Image) (*models.Museum, error) {
	args := m.Called(ctx, uid, category, title, subtitle, image)
	if res := args.Get(0); res != nil {
		return res.(*models.Museum), args.Error(1)
	}
	return nil, args.Error(1)
}

func multipartBody(t *testing.T, fields map[string]string, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("images", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	imageBytes := []byte("new-png-bytes")

	tests := []struct {
		name           string
		uid            string
		fields         map[string]string
		filename       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "обновление только текста, без файла",
			uid:    "uid-1",
			fields: map[string]string{"title": "New Title"},
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "uid-1", "", "New Title", "", (*museumsvc.Image)(nil)).
					Return(&models.Museum{UID: "uid-1", Category: "History", Title: "New Title"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"New Title"`,
		},
		{
			name:     "замена изображения",
			uid:      "uid-1",
			fields:   map[string]string{},
			filename: "new.png",
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "uid-1", "", "", "",
					&museumsvc.Image{Content: imageBytes, Filename: "new.png"}).
					Return(&models.Museum{
						UID:      "uid-1",
						Category: "History",
						ImageURL: "https://media.example.com/museum-images/new.png",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"images":"https://media.example.com/museum-images/new.png"`,
		},
		{
			name:   "запись не найдена",
			uid:    "missing-uid",
			fields: map[string]string{"title": "New Title"},
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "missing-uid", "", "New Title", "", (*museumsvc.Image)(nil)).
					Return(nil, models.ErrMuseumNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"museum entry not found"`,
		},
		{
			name:   "ошибка сервиса",
			uid:    "uid-1",
			fields: map[string]string{"title": "New Title"},
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "uid-1", "", "New Title", "", (*museumsvc.Image)(nil)).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not update museum entry"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, contentType := multipartBody(t, tt.fields, tt.filename, imageBytes)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/museum/"+tt.uid, body)
			req.Header.Set("Content-Type", contentType)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.uid)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
