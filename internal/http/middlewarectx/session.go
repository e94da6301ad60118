// Package middlewarectx содержит HTTP middleware браузерной сессии.
//
// LoadSession читает cookie сессии, проверяет подпись и кладёт найденную
// сессию в контекст запроса. RequireSession пропускает запрос только с
// аутентифицированной сессией, иначе перенаправляет на страницу входа.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
	"github.com/magabrotheeeer/eventos/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey — ключ сессии в контексте.
const SessionKey Key = "session"

// LoginPath — страница входа, куда направляются анонимные запросы.
const LoginPath = "/login/"

// HomePath — домашняя страница вошедшего пользователя.
const HomePath = "/home/"

// WithSession возвращает контекст с сессией.
func WithSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// SessionFrom возвращает сессию из контекста или nil.
func SessionFrom(ctx context.Context) *models.Session {
	sess, _ := ctx.Value(SessionKey).(*models.Session)
	return sess
}

// UIDFrom возвращает uid пользователя сессии или пустую строку.
func UIDFrom(ctx context.Context) string {
	if sess := SessionFrom(ctx); sess != nil {
		return sess.UID
	}
	return ""
}

// SessionGetter ищет сессию по id.
type SessionGetter interface {
	Get(ctx context.Context, id string) (*models.Session, error)
}

// CookieVerifier проверяет подписанное значение cookie и возвращает id сессии.
type CookieVerifier interface {
	Verify(value string) (string, error)
}

// CookieConfig описывает cookie сессии.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// Set записывает cookie сессии.
func (c CookieConfig) Set(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear удаляет cookie сессии.
func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
	})
}

// LoadSession помещает сессию из cookie в контекст. Отсутствующая, поддельная
// или истёкшая сессия оставляет запрос анонимным.
func LoadSession(log *slog.Logger, sessions SessionGetter, verifier CookieVerifier, cookie CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LoadSession"

			c, err := r.Cookie(cookie.Name)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			id, err := verifier.Verify(c.Value)
			if err != nil {
				log.Warn("rejected session cookie", sl.Err(err))
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Get(r.Context(), id)
			switch {
			case errors.Is(err, session.ErrNotFound):
				cookie.Clear(w)
				next.ServeHTTP(w, r)
				return
			case err != nil:
				log.Error("failed to load session", sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireSession пропускает только запросы с аутентифицированной сессией.
func RequireSession(log *slog.Logger, guard *access.Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := guard.RequireSession(SessionFrom(r.Context())); err != nil {
				log.Info("anonymous request to protected page",
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				response.Redirect(w, r, LoginPath, messages.LoginRequired)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
