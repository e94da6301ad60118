// Package create реализует страницу создания события.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/request"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
)

const (
	// Page — имя страницы создания.
	Page = "eventos/crear_evento"
	// ListPath — страница списка событий.
	ListPath = "/eventos/"
)

// Service создаёт событие.
type Service interface {
	Create(ctx context.Context, uid string, form models.EventForm) (string, error)
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
// @Summary Создание события
// @Description Создаёт событие, владельцем которого становится пользователь сессии.
// @Tags Events
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body models.EventForm true "Поля события"
// @Success 303 "Редирект на /eventos/"
// @Failure 400 {object} response.Page "Некорректное тело запроса"
// @Failure 422 {object} response.Page "Ошибка валидации"
// @Failure 500 {object} response.Page "Ошибка хранилища"
// @Router /eventos/crear/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodPost {
		response.RenderPage(w, r, http.StatusOK, Page, nil)
		return
	}

	var form models.EventForm
	if err := request.Decode(r, &form); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.RenderPage(w, r, http.StatusBadRequest, Page, nil, messages.CreateError(request.ErrInvalidBody))
		return
	}
	if msg, err := request.Validate(h.validate, form); err != nil || msg != "" {
		log.Error("validation failed", slog.String("violations", msg))
		response.RenderPage(w, r, http.StatusUnprocessableEntity, Page, form, msg)
		return
	}

	uid := middlewarectx.UIDFrom(r.Context())
	id, err := h.service.Create(r.Context(), uid, form)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		response.RenderPage(w, r, http.StatusInternalServerError, Page, form, messages.CreateError(err))
		return
	}

	log.Info("event created", slog.String("id", id))
	response.Redirect(w, r, ListPath, messages.EventCreated)
}
