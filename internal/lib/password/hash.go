// Package password реализует функции для хеширования и проверки паролей
// локального провайдера учётных записей.
//
// GetHash создает bcrypt-хеш пароля, CompareHash сверяет хеш с введённым паролем,
// CheckStrength отклоняет пароли, которые провайдер не примет.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinLength — минимальная длина пароля, как у Firebase Auth.
	MinLength = 6
	// MaxLength — ограничение bcrypt на длину входа в байтах.
	MaxLength = 72
)

var (
	// ErrTooShort возвращается для пароля короче MinLength.
	ErrTooShort = errors.New("password too short")
	// ErrTooLong возвращается для пароля длиннее MaxLength байт.
	ErrTooLong = errors.New("password too long")
)

// CheckStrength проверяет длину пароля.
func CheckStrength(password string) error {
	switch {
	case len([]rune(password)) < MinLength:
		return ErrTooShort
	case len(password) > MaxLength:
		return ErrTooLong
	}
	return nil
}

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
