// Package home реализует страницу профиля аутентифицированного пользователя.
package home

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
)

// Page — имя страницы профиля.
const Page = "home"

// Service возвращает профиль пользователя сессии.
type Service interface {
	Profile(ctx context.Context, sess *models.Session) (*models.User, error)
}

// Handler обрабатывает страницу профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Page "Профиль в data.datos_usuario"
// @Success 303 "Редирект на /login/ без сессии"
// @Router /home/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.home"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFrom(r.Context())
	user, err := h.service.Profile(r.Context(), sess)
	if err != nil {
		log.Error("failed to get profile", sl.Err(err))
		response.RenderPage(w, r, http.StatusInternalServerError, Page,
			map[string]any{"datos_usuario": map[string]any{}}, messages.ProfileError(err))
		return
	}

	response.RenderPage(w, r, http.StatusOK, Page, map[string]any{"datos_usuario": user})
}
