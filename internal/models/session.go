package models

import "time"

// Session связывает браузерную сессию с аутентифицированным пользователем.
type Session struct {
	ID        string    `json:"id"`
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	Token     string    `json:"id_token"`
	CreatedAt time.Time `json:"created_at"`
}
