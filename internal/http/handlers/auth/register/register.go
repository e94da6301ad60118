// Package register реализует HTTP-обработчик страницы регистрации.
//
// GET отдаёт страницу, POST создаёт учётную запись у провайдера и профиль
// пользователя. Результат выводится сообщением на той же странице.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/request"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
)

// Page — имя страницы регистрации.
const Page = "registro"

// Request — входные данные для регистрации.
type Request struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает страницу регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись и профиль с ролью persona_natural.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body Request true "Email и пароль"
// @Success 200 {object} response.Page "Страница регистрации с сообщением"
// @Failure 400 {object} response.Page "Некорректное тело запроса"
// @Failure 422 {object} response.Page "Ошибка валидации или отказ провайдера"
// @Router /registro/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if r.Method != http.MethodPost {
		response.RenderPage(w, r, http.StatusOK, Page, nil)
		return
	}

	var req Request
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.RenderPage(w, r, http.StatusBadRequest, Page, nil, messages.RegisterError(request.ErrInvalidBody))
		return
	}

	if msg, err := request.Validate(h.validate, req); err != nil || msg != "" {
		log.Error("validation failed", slog.String("violations", msg))
		response.RenderPage(w, r, http.StatusUnprocessableEntity, Page, nil, "❌ Error: "+msg)
		return
	}
	log.Info("all fields are validated")

	uid, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.RenderPage(w, r, http.StatusUnprocessableEntity, Page, nil, messages.RegisterError(err))
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	response.RenderPage(w, r, http.StatusOK, Page, map[string]any{"uid": uid}, messages.Registered(uid))
}
