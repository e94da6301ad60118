// Package logout реализует выход пользователя: сессия уничтожается,
// cookie удаляется, браузер перенаправляется на страницу входа.
// Если сессию удалить не удалось, она остаётся действующей: cookie не
// трогается, пользователь возвращается на домашнюю страницу с ошибкой.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
)

// Service описывает уничтожение сессии.
type Service interface {
	Logout(ctx context.Context, sessionID string) error
}

// Handler обрабатывает выход.
type Handler struct {
	log     *slog.Logger
	service Service
	cookie  middlewarectx.CookieConfig
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookie middlewarectx.CookieConfig) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cookie:  cookie,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Tags Auth
// @Success 303 "Редирект на /login/ или на /home/ при ошибке"
// @Router /logout/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if sess := middlewarectx.SessionFrom(r.Context()); sess != nil {
		if err := h.service.Logout(r.Context(), sess.ID); err != nil {
			log.Error("failed to destroy session", sl.Err(err))
			response.Redirect(w, r, middlewarectx.HomePath, messages.LogoutError(err))
			return
		}
		log.Info("session destroyed", slog.String("uid", sess.UID))
	}
	h.cookie.Clear(w)
	response.Redirect(w, r, middlewarectx.LoginPath, messages.LogoutSuccess)
}
