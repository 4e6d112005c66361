// Package models содержит доменные структуры бюджета: пользователя,
// транзакцию и агрегированную статистику.
package models

import "time"

// User представляет зарегистрированного пользователя.
// После регистрации не изменяется.
type User struct {
	ID           string    // UUID пользователя
	Email        string    // Уникальный email, сравнивается точно, с учётом регистра
	PasswordHash string    // bcrypt-хеш, открытый пароль нигде не хранится
	CreatedAt    time.Time // Время регистрации
}

// TokenTypeBearer значение token_type в ответах login и register.
const TokenTypeBearer = "bearer"

// Token ответ на успешные register и login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewBearerToken оборачивает выпущенный токен в ответ с token_type "bearer".
func NewBearerToken(accessToken string) Token {
	return Token{AccessToken: accessToken, TokenType: TokenTypeBearer}
}
