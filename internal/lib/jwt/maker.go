// Package jwt выпускает и проверяет подписанные токены доступа.
//
// Токен несёт только subject (email пользователя) и абсолютное время истечения.
// Секрет, алгоритм и время жизни задаются конфигурацией процесса и не меняются
// после старта. Отзыва токенов нет: утёкший токен действует до своего exp.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается при любой ошибке проверки токена.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrUnsupportedAlgorithm возвращается при попытке настроить не-HMAC алгоритм.
var ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// Maker описывает выпуск и разбор токенов доступа.
type Maker interface {
	// GenerateToken выпускает токен для subject с exp = now + TTL.
	GenerateToken(subject string) (string, error)
	// ParseToken проверяет токен и возвращает его subject.
	ParseToken(tokenStr string) (string, error)
}

// MakerImpl реализует Maker поверх симметричной HMAC-подписи.
type MakerImpl struct {
	secretKey []byte
	method    jwt.SigningMethod
	tokenTTL  time.Duration
	now       func() time.Time
}

var supportedMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// NewJWTMaker создаёт MakerImpl. algorithm: одно из HS256, HS384, HS512.
func NewJWTMaker(secretKey, algorithm string, ttl time.Duration) (*MakerImpl, error) {
	const op = "jwt.NewJWTMaker"
	method, ok := supportedMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnsupportedAlgorithm, algorithm)
	}
	if secretKey == "" {
		return nil, fmt.Errorf("%s: empty secret key", op)
	}
	return &MakerImpl{
		secretKey: []byte(secretKey),
		method:    method,
		tokenTTL:  ttl,
		now:       time.Now,
	}, nil
}
