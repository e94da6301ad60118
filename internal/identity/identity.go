// Package identity описывает провайдера учётных записей: регистрацию и проверку
// пары email/пароль. Реализации: firebase (Identity Toolkit REST API) и local
// (PostgreSQL + bcrypt).
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/eventos/internal/models"
)

// Коды ошибок провайдера. Совпадают с кодами Firebase Auth.
const (
	CodeInvalidCredentials = "INVALID_LOGIN_CREDENTIALS"
	CodeEmailNotFound      = "EMAIL_NOT_FOUND"
	CodeUserDisabled       = "USER_DISABLED"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS_TRY_LATER"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// ErrUnavailable оборачивает сетевые и прочие сбои обращения к провайдеру.
var ErrUnavailable = errors.New("identity provider unavailable")

// Error — отказ провайдера с кодом.
type Error struct {
	Code string
}

func (e *Error) Error() string {
	return fmt.Sprintf("identity: %s", e.Code)
}

// NewError создаёт *Error; пустой код заменяется на CodeUnknown.
func NewError(code string) *Error {
	if code == "" {
		code = CodeUnknown
	}
	return &Error{Code: code}
}

// CodeOf возвращает код ошибки провайдера из цепочки err или пустую строку.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Verifier — провайдер учётных записей.
type Verifier interface {
	// SignUp создаёт учётную запись и возвращает её uid.
	SignUp(ctx context.Context, email, password string) (string, error)
	// SignIn проверяет email и пароль.
	SignIn(ctx context.Context, email, password string) (*models.Credentials, error)
}
