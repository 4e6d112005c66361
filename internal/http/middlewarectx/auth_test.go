package middlewarectx_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/auth"
)

type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	user := &models.User{ID: "id-1", Email: "test@example.com"}

	tests := []struct {
		name           string
		authHeader     string
		token          string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantCalled     bool
		wantChallenge  bool
	}{
		{
			name:           "missing Authorization header",
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad",
			token:          "bad",
			mockErr:        fmt.Errorf("auth.Resolve: %w", auth.ErrInvalidToken),
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "storage failure",
			authHeader:     "Bearer token",
			token:          "token",
			mockErr:        errors.New("db down"),
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "scheme without token",
			authHeader:     "Bearer ",
			wantStatusCode: http.StatusUnauthorized,
			wantChallenge:  true,
		},
		{
			name:           "lowercase scheme",
			authHeader:     "bearer lowertoken",
			token:          "lowertoken",
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "uppercase scheme",
			authHeader:     "BEARER uppertoken",
			token:          "uppertoken",
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "valid token",
			authHeader:     "Bearer validtoken",
			token:          "validtoken",
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(ResolverMock)
			if tt.token != "" {
				resolver.On("Resolve", mock.Anything, tt.token).Return(tt.mockUser, tt.mockErr).Once()
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				got, ok := middlewarectx.UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, user, got)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(resolver, newNoopLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantChallenge {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Missing(t *testing.T) {
	_, ok := middlewarectx.UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = middlewarectx.UserFromContext(middlewarectx.WithUser(context.Background(), nil))
	assert.False(t, ok)
}
