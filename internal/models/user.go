// Package models содержит доменные структуры приложения: профиль пользователя,
// сессию, событие и сообщения аудита. Структуры используются в бизнес‑логике,
// хранилище и HTTP‑слое.
package models

import "time"

const (
	// RoleNaturalPerson — роль, назначаемая при регистрации.
	RoleNaturalPerson = "persona_natural"
	// RoleUnknown — роль профиля, который не найден в хранилище.
	RoleUnknown = "desconocido"
)

// User представляет профиль зарегистрированного пользователя.
type User struct {
	UID          string     `json:"uid"`            // Идентификатор, выданный провайдером учётных записей
	Email        string     `json:"email"`          // Электронная почта
	Role         string     `json:"rol"`            // Роль пользователя
	RegisteredAt *time.Time `json:"fecha_registro"` // Дата регистрации, nil для профиля-заглушки
}

// Credentials — результат успешной проверки учётных данных.
type Credentials struct {
	UID   string
	Email string
	Token string
}

// Credential — запись локального провайдера учётных записей.
type Credential struct {
	UID          string
	Email        string
	PasswordHash string
	Disabled     bool
}
