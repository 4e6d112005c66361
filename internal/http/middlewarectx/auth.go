// Package middlewarectx содержит HTTP middleware сервиса.
//
// JWTMiddleware проверяет токен из заголовка Authorization и кладет найденного
// пользователя в контекст запроса. Обработчики достают его через UserFromContext
// и передают в сервисы явным аргументом.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/budget-manager/internal/http/response"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ для пользователя в контексте
const User Key = "user"

// Resolver описывает проверку токена и поиск его владельца.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает middleware, который пропускает только запросы
// с действующим Bearer-токеном. Иначе отвечает 401 с WWW-Authenticate: Bearer.
func JWTMiddleware(resolver Resolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or invalid authorization header")
				response.Unauthorized(w, r, "not authenticated")
				return
			}

			user, err := resolver.Resolve(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					log.Info("token rejected", sl.Err(err))
					response.Unauthorized(w, r, auth.ErrInvalidToken.Error())
					return
				}
				log.Error("failed to resolve token", sl.Err(err))
				response.WriteError(w, r, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken достаёт токен из заголовка "<scheme> <token>".
// Схема сравнивается без учёта регистра.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// UserFromContext возвращает пользователя, положенного JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// WithUser кладет пользователя в контекст. Нужен обработчикам в тестах.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User, user)
}
