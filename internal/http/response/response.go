// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: страниц с сообщениями
// пользователю, редиректов с flash‑сообщениями и ошибок валидации.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/http/flash"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"too many requests"`
}

// Page — отрисованная страница: имя шаблона, сообщения пользователю и данные.
type Page struct {
	Status   string   `json:"status" example:"OK"`
	Page     string   `json:"page" example:"login"`
	Messages []string `json:"messages,omitempty"`
	Data     any      `json:"data,omitempty"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// RenderPage отдаёт страницу name с кодом status. Ожидающие flash‑сообщения
// выводятся перед msgs.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any, msgs ...string) {
	messages := append(flash.Pop(w, r), msgs...)
	pageStatus := StatusOK
	if status >= http.StatusBadRequest {
		pageStatus = StatusError
	}
	render.Status(r, status)
	render.JSON(w, r, Page{
		Status:   pageStatus,
		Page:     name,
		Messages: messages,
		Data:     data,
	})
}

// Redirect перенаправляет на url с кодом 303 и сохраняет msgs для следующей страницы.
func Redirect(w http.ResponseWriter, r *http.Request, url string, msgs ...string) {
	flash.Set(w, msgs...)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// ValidationError формирует текст ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) string {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}
