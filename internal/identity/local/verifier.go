// Package local реализует identity.Verifier на учётных данных в PostgreSQL.
//
// Пароли хранятся как bcrypt-хеши. Неудачные попытки входа ограничиваются
// отдельным token bucket на каждый email: после исчерпания лимита вход
// отклоняется с кодом TOO_MANY_ATTEMPTS_TRY_LATER до восстановления токенов.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/lib/jwt"
	"github.com/magabrotheeeer/eventos/internal/lib/password"
	"github.com/magabrotheeeer/eventos/internal/models"
	"github.com/magabrotheeeer/eventos/internal/storage"
)

// CredentialRepository описывает хранилище учётных данных.
type CredentialRepository interface {
	CreateCredential(ctx context.Context, cred models.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error)
}

// Verifier — локальный провайдер учётных записей.
type Verifier struct {
	repo   CredentialRepository
	tokens jwt.Maker
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	failures  map[string]*rate.Limiter
	lastPrune time.Time
}

// New создаёт Verifier. maxFailures неудачных попыток допускаются за window.
func New(repo CredentialRepository, tokens jwt.Maker, maxFailures int, window time.Duration) *Verifier {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Verifier{
		repo:     repo,
		tokens:   tokens,
		limit:    rate.Every(window / time.Duration(maxFailures)),
		burst:    maxFailures,
		window:   window,
		now:      time.Now,
		failures: make(map[string]*rate.Limiter),
	}
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// limiter возвращает bucket для email. Раз в window из карты удаляются
// полностью восстановившиеся bucket'ы: они неотличимы от новых.
func (v *Verifier) limiter(email string, now time.Time) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()
	if now.Sub(v.lastPrune) >= v.window {
		for key, lim := range v.failures {
			if lim.TokensAt(now) >= float64(v.burst) {
				delete(v.failures, key)
			}
		}
		v.lastPrune = now
	}
	lim, ok := v.failures[email]
	if !ok {
		lim = rate.NewLimiter(v.limit, v.burst)
		v.failures[email] = lim
	}
	return lim
}

// SignUp создаёт учётную запись и возвращает новый uid.
func (v *Verifier) SignUp(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "local.SignUp"
	if err := password.CheckStrength(rawPassword); err != nil {
		return "", identity.NewError(identity.CodeWeakPassword)
	}
	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	uid := uuid.NewString()
	err = v.repo.CreateCredential(ctx, models.Credential{
		UID:          uid,
		Email:        normalize(email),
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return "", identity.NewError(identity.CodeEmailExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, identity.ErrUnavailable, err)
	}
	return uid, nil
}

// SignIn проверяет пароль и выдаёт подписанный id-токен.
func (v *Verifier) SignIn(ctx context.Context, email, rawPassword string) (*models.Credentials, error) {
	const op = "local.SignIn"
	email = normalize(email)
	lim := v.limiter(email, v.now())
	if lim.TokensAt(v.now()) < 1 {
		return nil, identity.NewError(identity.CodeTooManyAttempts)
	}

	cred, err := v.repo.GetCredentialByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		lim.AllowN(v.now(), 1)
		return nil, identity.NewError(identity.CodeEmailNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, identity.ErrUnavailable, err)
	}
	if cred.Disabled {
		return nil, identity.NewError(identity.CodeUserDisabled)
	}
	if err := password.CompareHash(cred.PasswordHash, rawPassword); err != nil {
		lim.AllowN(v.now(), 1)
		return nil, identity.NewError(identity.CodeInvalidCredentials)
	}

	token, err := v.tokens.GenerateToken(jwt.CustomClaims{UserUID: cred.UID, Email: cred.Email})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Credentials{
		UID:   cred.UID,
		Email: cred.Email,
		Token: token,
	}, nil
}
