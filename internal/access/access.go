// Package access содержит правила контроля доступа: запрос к защищённой точке
// допускается только с аутентифицированной сессией, изменение события — только
// его владельцем.
package access

import (
	"errors"

	"github.com/magabrotheeeer/eventos/internal/models"
)

var (
	// ErrNotAuthenticated — в сессии нет пользователя.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden — пользователь не владеет ресурсом.
	ErrForbidden = errors.New("forbidden")
)

// Decision — исход проверки доступа.
type Decision string

const (
	Authorized   Decision = "authorized"
	Unauthorized Decision = "unauthorized"
	Permitted    Decision = "permitted"
	Denied       Decision = "denied"
)

// Recorder учитывает принятые решения.
type Recorder interface {
	Record(d Decision)
}

// Guard применяет правила доступа и сообщает о решениях в Recorder.
type Guard struct {
	rec Recorder
}

// NewGuard создаёт Guard. rec может быть nil.
func NewGuard(rec Recorder) *Guard {
	return &Guard{rec: rec}
}

func (g *Guard) record(d Decision) {
	if g != nil && g.rec != nil {
		g.rec.Record(d)
	}
}

// RequireSession возвращает uid пользователя сессии или ErrNotAuthenticated.
func (g *Guard) RequireSession(sess *models.Session) (string, error) {
	if sess == nil || sess.UID == "" {
		g.record(Unauthorized)
		return "", ErrNotAuthenticated
	}
	g.record(Authorized)
	return sess.UID, nil
}

// RequireOwnership возвращает ErrForbidden, если uid не владелец события.
// Существование события проверяется вызывающей стороной раньше.
func (g *Guard) RequireOwnership(uid string, ev *models.Event) error {
	if ev == nil || uid == "" || ev.OwnerUID != uid {
		g.record(Denied)
		return ErrForbidden
	}
	g.record(Permitted)
	return nil
}
