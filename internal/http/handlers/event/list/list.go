// Package list реализует страницу со списком событий пользователя.
package list

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

// Page — имя страницы списка.
const Page = "eventos/listar_eventos"

// Service возвращает события владельца.
type Service interface {
	List(ctx context.Context, uid string) ([]*models.Event, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список событий пользователя
// @Tags Events
// @Produce  json
// @Success 200 {object} response.Page "События в data.eventos"
// @Failure 500 {object} response.Page "Ошибка хранилища"
// @Router /eventos/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := middlewarectx.UIDFrom(r.Context())
	events, err := h.service.List(r.Context(), uid)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		response.RenderPage(w, r, http.StatusInternalServerError, Page,
			map[string]any{"eventos": []*models.Event{}}, messages.ListError(err))
		return
	}

	log.Info("events listed", slog.Int("count", len(events)))
	response.RenderPage(w, r, http.StatusOK, Page, map[string]any{"eventos": events})
}
