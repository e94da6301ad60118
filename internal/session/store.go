// Package session хранит браузерные сессии аутентифицированных пользователей.
//
// Сессия живёт в Redis под ключом session:<id> и удаляется при выходе или
// по истечении TTL. Браузер получает не сам id, а подписанный JWT с ним,
// поэтому подделанная cookie отклоняется до обращения к хранилищу.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/eventos/internal/lib/jwt"
	"github.com/magabrotheeeer/eventos/internal/models"
)

// ErrNotFound возвращается для неизвестной или истёкшей сессии.
var ErrNotFound = errors.New("session not found")

// Cache описывает методы кеша, которыми пользуется хранилище.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Store — хранилище сессий.
type Store interface {
	Create(ctx context.Context, sess models.Session) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore реализует Store поверх Redis.
type RedisStore struct {
	cache Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewRedisStore создаёт хранилище с временем жизни сессии ttl.
func NewRedisStore(cache Cache, ttl time.Duration) *RedisStore {
	return &RedisStore{
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
}

func key(id string) string {
	return "session:" + id
}

// Create присваивает сессии новый id и сохраняет её.
func (s *RedisStore) Create(ctx context.Context, sess models.Session) (*models.Session, error) {
	const op = "session.Create"
	sess.ID = uuid.NewString()
	sess.CreatedAt = s.now().UTC()
	if err := s.cache.Set(ctx, key(sess.ID), sess, s.ttl); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Get возвращает сессию по id.
func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	const op = "session.Get"
	if id == "" {
		return nil, ErrNotFound
	}
	var sess models.Session
	found, err := s.cache.Get(ctx, key(id), &sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete удаляет сессию. Удаление отсутствующей сессии не является ошибкой.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	const op = "session.Delete"
	if err := s.cache.Invalidate(ctx, key(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Signer превращает id сессии в значение cookie и обратно.
type Signer struct {
	maker jwt.Maker
}

// NewSigner создаёт Signer на базе jwt.Maker.
func NewSigner(maker jwt.Maker) *Signer {
	return &Signer{maker: maker}
}

// Sign возвращает подписанное значение cookie для сессии.
func (s *Signer) Sign(sess *models.Session) (string, error) {
	return s.maker.GenerateToken(jwt.CustomClaims{SessionID: sess.ID, UserUID: sess.UID})
}

// Verify проверяет значение cookie и возвращает id сессии.
func (s *Signer) Verify(value string) (string, error) {
	const op = "session.Verify"
	claims, err := s.maker.ParseToken(value)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if claims.SessionID == "" {
		return "", fmt.Errorf("%s: token without session id", op)
	}
	return claims.SessionID, nil
}
