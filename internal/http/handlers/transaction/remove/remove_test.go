package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/transaction"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, user *models.User, id int64) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := &models.User{ID: "owner-1"}

	tests := []struct {
		name           string
		url            string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			url:  "/api/transactions/5",
			user: user,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, int64(5)).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Transaction deleted successfully"}`,
		},
		{
			name: "не найдена",
			url:  "/api/transactions/5",
			user: user,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, int64(5)).
					Return(fmt.Errorf("transaction.Delete: %w", transaction.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"transaction not found"}`,
		},
		{
			name:           "некорректный id",
			url:            "/api/transactions/1.5",
			user:           user,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/api/transactions/5",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"not authenticated"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/api/transactions/5",
			user: user,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, int64(5)).Return(errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not delete transaction"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			ctx := req.Context()
			if tt.user != nil {
				ctx = middlewarectx.WithUser(ctx, tt.user)
			}
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/api/transactions/"))
			req = req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
