package models

import "time"

// Действия, публикуемые в брокер сообщений.
const (
	ActionUserRegistered = "user.registered"
	ActionEventCreated   = "event.created"
	ActionEventUpdated   = "event.updated"
	ActionEventDeleted   = "event.deleted"
)

// AuditMessage описывает изменение, совершённое пользователем.
type AuditMessage struct {
	Action  string    `json:"action"`
	UserUID string    `json:"user_uid"`
	EventID string    `json:"event_id,omitempty"`
	At      time.Time `json:"at"`
}
