// Package auth содержит регистрацию, вход и проверку токенов доступа.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/budget-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-manager/internal/lib/password"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/models"
	"github.com/magabrotheeeer/budget-manager/internal/storage"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AttemptGuard считает неудачные попытки входа по ключу.
type AttemptGuard interface {
	Attempts(ctx context.Context, key string) (int, error)
	RegisterFailure(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}

// AuthService отвечает за регистрацию и вход.
type AuthService struct {
	log      *slog.Logger
	users    UserRepository
	jwtMaker jwt.Maker

	guard       AttemptGuard
	maxAttempts int
	window      time.Duration
}

// NewAuthService создает новый экземпляр AuthService без ограничения попыток входа.
func NewAuthService(log *slog.Logger, users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		log:      log,
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// WithLoginGuard включает ограничение неудачных попыток входа.
// maxAttempts <= 0 или nil guard оставляют вход без ограничений.
func (s *AuthService) WithLoginGuard(guard AttemptGuard, maxAttempts int, window time.Duration) *AuthService {
	s.guard = guard
	s.maxAttempts = maxAttempts
	s.window = window
	return s
}

// Register создает пользователя и сразу выдает ему токен.
// Занятый email проверяется до записи; гонку двух регистраций разрешает уникальный индекс.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	case !errors.Is(err, storage.ErrUserNotFound):
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return "", fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_id", user.ID))
	return token, nil
}

// Login проверяет пароль и выдает токен. Неизвестный email и неверный пароль
// неразличимы для вызывающего. Счётчик неудачных попыток ведётся для пары
// email и client (адрес клиента), поэтому попытки с другого адреса его не трогают.
func (s *AuthService) Login(ctx context.Context, email, rawPassword, client string) (string, error) {
	const op = "auth.Login"

	key := attemptKey(email, client)
	if s.locked(ctx, key) {
		return "", fmt.Errorf("%s: %w", op, ErrTooManyAttempts)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.registerFailure(ctx, key)
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !password.Verify(rawPassword, user.PasswordHash) {
		s.registerFailure(ctx, key)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	s.resetFailures(ctx, key)

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

func attemptKey(email, client string) string {
	return email + "|" + client
}

func (s *AuthService) guardEnabled() bool {
	return s.guard != nil && s.maxAttempts > 0
}

// Ошибки redis не блокируют вход.
func (s *AuthService) locked(ctx context.Context, key string) bool {
	if !s.guardEnabled() {
		return false
	}
	n, err := s.guard.Attempts(ctx, key)
	if err != nil {
		s.log.Warn("login guard unavailable", sl.Err(err))
		return false
	}
	return n >= s.maxAttempts
}

func (s *AuthService) registerFailure(ctx context.Context, key string) {
	if !s.guardEnabled() {
		return
	}
	if _, err := s.guard.RegisterFailure(ctx, key, s.window); err != nil {
		s.log.Warn("failed to register login failure", sl.Err(err))
	}
}

func (s *AuthService) resetFailures(ctx context.Context, key string) {
	if !s.guardEnabled() {
		return
	}
	if err := s.guard.Reset(ctx, key); err != nil {
		s.log.Warn("failed to reset login failures", sl.Err(err))
	}
}
