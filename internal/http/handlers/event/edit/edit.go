// Package edit реализует страницу редактирования события.
//
// Сначала проверяется существование события, затем владение; любая неудача
// возвращает пользователя на список событий с сообщением.
package edit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/request"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
	eventservice "github.com/magabrotheeeer/eventos/internal/services/events"
)

const (
	// Page — имя страницы редактирования.
	Page = "eventos/editar_evento"
	// ListPath — страница списка событий.
	ListPath = "/eventos/"
)

// Service описывает чтение и изменение события владельцем.
type Service interface {
	GetForEdit(ctx context.Context, uid, id string) (*models.Event, error)
	Update(ctx context.Context, uid, id string, form models.EventForm) error
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Редактирование события
// @Description GET отдаёт событие, POST перезаписывает titulo, descripcion, lugar и fecha.
// @Tags Events
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param id path string true "ID события"
// @Param request body models.EventForm false "Новые значения полей"
// @Success 200 {object} response.Page "Событие в data.evento"
// @Success 303 "Редирект на /eventos/"
// @Failure 422 {object} response.Page "Ошибка валидации"
// @Router /eventos/editar/{id}/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.edit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	uid := middlewarectx.UIDFrom(r.Context())

	ev, err := h.service.GetForEdit(r.Context(), uid, id)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	if r.Method != http.MethodPost {
		response.RenderPage(w, r, http.StatusOK, Page, map[string]any{"evento": ev, "evento_id": id})
		return
	}

	var form models.EventForm
	if err := request.Decode(r, &form); err != nil {
		h.fail(w, r, log, err)
		return
	}
	if msg, err := request.Validate(h.validate, form); err != nil || msg != "" {
		log.Error("validation failed", slog.String("violations", msg))
		response.RenderPage(w, r, http.StatusUnprocessableEntity, Page,
			map[string]any{"evento": ev, "evento_id": id}, msg)
		return
	}

	if err := h.service.Update(r.Context(), uid, id, form); err != nil {
		h.fail(w, r, log, err)
		return
	}

	log.Info("event updated", slog.String("id", id))
	response.Redirect(w, r, ListPath, messages.EventUpdated)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, eventservice.ErrNotFound):
		log.Info("event not found", sl.Err(err))
		response.Redirect(w, r, ListPath, messages.EventNotFound)
	case errors.Is(err, access.ErrForbidden):
		log.Warn("edit denied", sl.Err(err))
		response.Redirect(w, r, ListPath, messages.EditForbidden)
	default:
		log.Error("failed to edit event", sl.Err(err))
		response.Redirect(w, r, ListPath, messages.EditError(err))
	}
}
