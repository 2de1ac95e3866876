package clientread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// MockService реализует интерфейс clientread.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userUID string, id int) (*models.Client, error) {
	args := m.Called(ctx, userUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	user := &models.User{UID: "uid-1", Name: "Anna", Email: "anna@example.com"}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение клиента",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", 5).
					Return(&models.Client{ID: 5, Name: "Анна Смирнова"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Анна Смирнова"`,
		},
		{
			name: "клиент не найден",
			id:   "77",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", 77).
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `client not found`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode id from url`,
		},
		{
			name: "ошибка сервиса чтения",
			id:   "5",
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "uid-1", 5).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not read client`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/clients/"+tt.id, nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, user))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
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
