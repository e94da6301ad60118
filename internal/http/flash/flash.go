// Package flash передаёт одноразовые сообщения пользователю через cookie:
// сообщения записываются перед редиректом и показываются на следующей странице.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// CookieName — имя cookie с сообщениями.
const CookieName = "messages"

// Set сохраняет сообщения в cookie ответа.
func Set(w http.ResponseWriter, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop возвращает сообщения из запроса и удаляет cookie.
// Повреждённая cookie удаляется без ошибки.
func Pop(w http.ResponseWriter, r *http.Request) []string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var msgs []string
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
