// Package audit обрабатывает сообщения аудита из брокера: каждое действие
// пользователя записывается в структурированный лог.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/models"
)

// ErrInvalidMessage — сообщение без действия или пользователя.
var ErrInvalidMessage = errors.New("invalid audit message")

type AuditService struct {
	log *slog.Logger
}

func NewAuditService(log *slog.Logger) *AuditService {
	return &AuditService{log: log}
}

// Handle записывает сообщение в лог. Неразбираемое сообщение отбрасывается
// без ошибки, чтобы не возвращаться в очередь бесконечно.
func (s *AuditService) Handle(_ context.Context, body []byte) error {
	const op = "services.audit.Handle"
	log := s.log.With(slog.String("op", op))

	msg, err := Decode(body)
	if err != nil {
		log.Warn("dropping audit message", sl.Err(err), slog.Int("size", len(body)))
		return nil
	}

	log.Info("audit",
		slog.String("action", msg.Action),
		slog.String("user_uid", msg.UserUID),
		slog.String("event_id", msg.EventID),
		slog.Time("at", msg.At),
	)
	return nil
}

// Decode разбирает сообщение аудита и проверяет обязательные поля.
func Decode(body []byte) (*models.AuditMessage, error) {
	const op = "services.audit.Decode"

	var msg models.AuditMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if msg.Action == "" || msg.UserUID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMessage)
	}
	return &msg, nil
}
