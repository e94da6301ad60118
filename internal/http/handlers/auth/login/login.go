// Package login реализует HTTP-обработчик страницы входа.
//
// Учётные данные проверяются провайдером; только при успехе создаётся сессия,
// браузер получает подписанную cookie и перенаправляется на /home/.
// Отказ провайдера выводится сообщением на странице входа.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/http/messages"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/http/request"
	"github.com/magabrotheeeer/eventos/internal/http/response"
	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
)

const (
	// Page — имя страницы входа.
	Page = "login"
	// HomePath — куда направляется пользователь после входа.
	HomePath = middlewarectx.HomePath
)

// Request — структура входных данных для входа.
type Request struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
}

// Signer подписывает id сессии для cookie.
type Signer interface {
	Sign(sess *models.Session) (string, error)
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	signer   Signer
	cookie   middlewarectx.CookieConfig
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, signer Signer, cookie middlewarectx.CookieConfig) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		signer:   signer,
		cookie:   cookie,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль у провайдера учётных записей, создаёт сессию и ставит cookie.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 303 "Редирект на /home/"
// @Failure 401 {object} response.Page "Отказ провайдера"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Failure 502 {object} response.Page "Провайдер недоступен"
// @Router /login/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if sess := middlewarectx.SessionFrom(r.Context()); sess != nil && sess.UID != "" {
		response.Redirect(w, r, HomePath)
		return
	}

	if r.Method != http.MethodPost {
		response.RenderPage(w, r, http.StatusOK, Page, nil)
		return
	}

	var req Request
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.RenderPage(w, r, http.StatusBadRequest, Page, nil, request.ErrInvalidBody.Error())
		return
	}
	if msg, err := request.Validate(h.validate, req); err != nil || msg != "" {
		log.Error("validation failed", slog.String("violations", msg))
		response.RenderPage(w, r, http.StatusUnprocessableEntity, Page, nil, msg)
		return
	}

	sess, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		switch code := identity.CodeOf(err); {
		case code != "":
			response.RenderPage(w, r, http.StatusUnauthorized, Page, nil, messages.LoginError(code))
		case errors.Is(err, identity.ErrUnavailable):
			response.RenderPage(w, r, http.StatusBadGateway, Page, nil, messages.ConnectionError(err))
		default:
			response.RenderPage(w, r, http.StatusInternalServerError, Page, nil, messages.LoginError(identity.CodeUnknown))
		}
		return
	}

	value, err := h.signer.Sign(sess)
	if err != nil {
		log.Error("failed to sign session cookie", sl.Err(err))
		response.RenderPage(w, r, http.StatusInternalServerError, Page, nil, messages.LoginError(identity.CodeUnknown))
		return
	}
	h.cookie.Set(w, value)

	log.Info("login success", slog.String("uid", sess.UID))
	response.Redirect(w, r, HomePath, messages.LoginSuccess)
}
