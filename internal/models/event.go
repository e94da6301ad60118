package models

import "time"

// Event представляет событие пользователя. OwnerUID назначается при создании
// и больше не меняется.
type Event struct {
	ID          string     `json:"id"`
	OwnerUID    string     `json:"uid_usuario"`
	Title       string     `json:"titulo"`
	Description string     `json:"descripcion"`
	Place       string     `json:"lugar"`
	Date        string     `json:"fecha"`
	CreatedAt   time.Time  `json:"fecha_creacion"`
	UpdatedAt   *time.Time `json:"fecha_actualizacion,omitempty"`
}

// EventForm используется для приёма изменяемых полей события из формы или JSON.
// Пустые строки допустимы.
type EventForm struct {
	Title       string `json:"titulo" form:"titulo" validate:"max=200"`
	Description string `json:"descripcion" form:"descripcion" validate:"max=5000"`
	Place       string `json:"lugar" form:"lugar" validate:"max=200"`
	Date        string `json:"fecha" form:"fecha" validate:"max=64"`
}
