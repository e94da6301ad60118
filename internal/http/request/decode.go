// Package request декодирует тело формы или JSON в структуру и валидирует её.
package request

import (
	"errors"
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventos/internal/http/response"
)

// ErrInvalidBody возвращается, если тело запроса не удалось разобрать.
var ErrInvalidBody = errors.New("invalid request body")

// Decode разбирает application/x-www-form-urlencoded или JSON в v.
// Лишние поля формы (например, csrf-токен) игнорируются.
func Decode(r *http.Request, v any) error {
	var err error
	if render.GetRequestContentType(r) == render.ContentTypeForm {
		d := form.NewDecoder(r.Body)
		d.IgnoreUnknownKeys(true)
		err = d.Decode(v)
	} else {
		err = render.DecodeJSON(r.Body, v)
	}
	if err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}

// Validate проверяет v и возвращает текст нарушений или пустую строку.
func Validate(validate *validator.Validate, v any) (string, error) {
	err := validate.Struct(v)
	if err == nil {
		return "", nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return response.ValidationError(verrs), nil
	}
	return "", err
}
