// Package messages содержит тексты, которые видит пользователь.
package messages

import (
	"fmt"

	"github.com/magabrotheeeer/eventos/internal/identity"
)

const (
	LoginRequired = "Debes iniciar sesión para acceder a esta página."
	LoginSuccess  = "🟢 Inicio de sesión exitoso."
	LogoutSuccess = "Sesión cerrada exitosamente."

	EventCreated    = "Evento creado exitosamente."
	EventUpdated    = "Evento actualizado exitosamente."
	EventDeleted    = "Evento eliminado exitosamente."
	EventNotFound   = "Evento no encontrado."
	EditForbidden   = "No tienes permiso para editar este evento."
	DeleteForbidden = "No tienes permiso para eliminar este evento."

	unknownLoginError = "Error desconocido. Intente nuevamente."
)

var loginErrors = map[string]string{
	identity.CodeInvalidCredentials: "La contraseña es incorrecta o el correo no es válido.",
	identity.CodeEmailNotFound:      "Este correo no está registrado en el sistema.",
	identity.CodeUserDisabled:       "Esta cuenta ha sido inhabilitada por el administrador.",
	identity.CodeTooManyAttempts:    "Demasiados intentos fallidos. Espere unos minutos.",
}

// LoginError возвращает сообщение для кода отказа провайдера.
func LoginError(code string) string {
	msg, ok := loginErrors[code]
	if !ok {
		msg = unknownLoginError
	}
	return "🔴 " + msg
}

// ConnectionError — провайдер недоступен.
func ConnectionError(err error) string {
	return fmt.Sprintf("Error de conexión: %s", err)
}

// Registered — успешная регистрация.
func Registered(uid string) string {
	return fmt.Sprintf("😊 Usuario registrado correctamente con UID: %s", uid)
}

// RegisterError выводит код провайдера, если он есть, иначе текст ошибки.
func RegisterError(err error) string {
	if code := identity.CodeOf(err); code != "" {
		return fmt.Sprintf("❌ Error: %s", code)
	}
	return fmt.Sprintf("❌ Error: %s", err)
}

func ProfileError(err error) string {
	return fmt.Sprintf("Error al obtener datos del usuario: %s", err)
}

func LogoutError(err error) string {
	return fmt.Sprintf("Error al cerrar sesión: %s", err)
}

func ListError(err error) string {
	return fmt.Sprintf("Error al listar eventos: %s", err)
}

func CreateError(err error) string {
	return fmt.Sprintf("Error al crear evento: %s", err)
}

func EditError(err error) string {
	return fmt.Sprintf("Error al editar evento: %s", err)
}

func DeleteError(err error) string {
	return fmt.Sprintf("Error al eliminar evento: %s", err)
}
