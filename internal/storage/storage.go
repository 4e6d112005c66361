// Package storage объявляет ошибки слоя хранения, общие для всех реализаций.
// Сервисы сравнивают с ними через errors.Is и переводят в доменные ошибки.
package storage

import "errors"

var (
	// ErrUserNotFound пользователя с таким email нет.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists email уже занят.
	ErrUserExists = errors.New("user already exists")
	// ErrTransactionNotFound нет транзакции с таким id у этого владельца.
	ErrTransactionNotFound = errors.New("transaction not found")
)
