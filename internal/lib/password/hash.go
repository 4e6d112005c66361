// Package password хеширует и проверяет пароли пользователей с помощью bcrypt.
//
// Пароль усекается до первых 72 символов и при хешировании, и при проверке:
// символы после 72-го игнорируются. Граница не должна меняться, иначе
// сохранённые хеши перестанут совпадать.
package password

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength количество символов пароля, которые участвуют в хешировании.
const MaxLength = 72

// maxBytes предел bcrypt на длину входа в байтах.
const maxBytes = 72

// Hash усекает пароль и возвращает его bcrypt-хеш в виде непрозрачной строки.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Verify проверяет пароль против сохранённого хеша с той же усечкой, что и Hash.
// Сравнение выполняет bcrypt за постоянное время; повреждённый хеш даёт false.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password)) == nil
}

// truncate оставляет первые MaxLength символов, а если их UTF-8 представление
// длиннее 72 байт, то и первые 72 байта: ровно столько bcrypt читает сам.
// Срез берётся из исходных байтов, поэтому невалидный UTF-8 не заменяется на U+FFFD:
// каждый такой байт считается отдельным символом.
func truncate(password string) []byte {
	end := 0
	for n := 0; n < MaxLength && end < len(password); n++ {
		_, size := utf8.DecodeRuneInString(password[end:])
		end += size
	}
	if end > maxBytes {
		end = maxBytes
	}
	return []byte(password[:end])
}
