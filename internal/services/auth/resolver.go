package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/budget-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/storage"
)

// UserLookup ищет пользователя по email из токена.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Resolver превращает предъявленный токен в пользователя.
type Resolver struct {
	tokens jwt.Maker
	users  UserLookup
}

// NewResolver создает Resolver.
func NewResolver(tokens jwt.Maker, users UserLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve проверяет токен и возвращает его владельца. Плохой токен и удалённый
// пользователь дают одну и ту же ErrInvalidToken. Прочие ошибки хранилища
// возвращаются как есть.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.Resolve"

	email, err := r.tokens.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := r.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
