// Package remove реализует удаление события владельцем.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
)

// ListPath — страница списка событий.
const ListPath = "/eventos/"

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	Delete(ctx context.Context, uid, id string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление события
// @Description Удаляет событие владельца. Отсутствующее событие даёт тот же результат.
// @Tags Events
// @Param id path string true "ID события"
// @Success 303 "Редирект на /eventos/"
// @Router /eventos/eliminar/{id}/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	uid := middlewarectx.UIDFrom(r.Context())

	err := h.service.Delete(r.Context(), uid, id)
	switch {
	case err == nil:
		log.Info("success to delete event", slog.String("id", id))
		response.Redirect(w, r, ListPath, messages.EventDeleted)
	case errors.Is(err, access.ErrForbidden):
		log.Warn("delete denied", sl.Err(err))
		response.Redirect(w, r, ListPath, messages.DeleteForbidden)
	default:
		log.Error("failed to delete event", sl.Err(err))
		response.Redirect(w, r, ListPath, messages.DeleteError(err))
	}
}
