// Package services содержит бизнес-логику управления событиями пользователя.
//
// Любое изменение события проходит две проверки в фиксированном порядке:
// сначала существование (ErrNotFound), затем владение (access.ErrForbidden).
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/metrics"
	"github.com/magabrotheeeer/eventos/internal/models"
	"github.com/magabrotheeeer/eventos/internal/storage"
)

// ErrNotFound возвращается для отсутствующего события.
var ErrNotFound = errors.New("event not found")

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	CreateEvent(ctx context.Context, ev models.Event) (string, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, form models.EventForm, updatedAt time.Time) error
	DeleteEvent(ctx context.Context, id string) (int64, error)
	ListEventsByOwner(ctx context.Context, uid string) ([]*models.Event, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, version int64, value any, expiration time.Duration) (bool, error)
	InvalidateVersion(ctx context.Context, key string) error
}

// Publisher отправляет сообщения аудита.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// EventService реализует работу с событиями, включая кеширование и контроль владения.
type EventService struct {
	repo     EventRepository
	cache    Cache
	guard    *access.Guard
	audit    Publisher
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(
	repo EventRepository,
	cache Cache,
	guard *access.Guard,
	audit Publisher,
	m *metrics.Metrics,
	log *slog.Logger,
) *EventService {
	return &EventService{
		repo:     repo,
		cache:    cache,
		guard:    guard,
		audit:    audit,
		metrics:  m,
		log:      log,
		now:      time.Now,
		cacheTTL: time.Hour,
	}
}

func cacheKey(id string) string {
	return "event:" + id
}

// Create сохраняет событие с владельцем uid и возвращает его id.
func (s *EventService) Create(ctx context.Context, uid string, form models.EventForm) (string, error) {
	const op = "services.CreateEvent"
	id, err := s.repo.CreateEvent(ctx, models.Event{
		OwnerUID:    uid,
		Title:       form.Title,
		Description: form.Description,
		Place:       form.Place,
		Date:        form.Date,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new event", slog.String("id", id), slog.String("uid", uid))

	s.publish(ctx, models.ActionEventCreated, uid, id)
	return id, nil
}

// List возвращает события владельца uid.
func (s *EventService) List(ctx context.Context, uid string) ([]*models.Event, error) {
	const op = "services.ListEvents"
	events, err := s.repo.ListEventsByOwner(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return events, nil
}

// GetForEdit возвращает событие, если оно существует и принадлежит uid.
func (s *EventService) GetForEdit(ctx context.Context, uid, id string) (*models.Event, error) {
	const op = "services.GetForEdit"
	ev, err := s.read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.guard.RequireOwnership(uid, ev); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ev, nil
}

// Update перезаписывает изменяемые поля события владельца и ставит updated_at.
func (s *EventService) Update(ctx context.Context, uid, id string, form models.EventForm) error {
	const op = "services.UpdateEvent"
	ev, err := s.load(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.guard.RequireOwnership(uid, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.repo.UpdateEvent(ctx, id, form, s.now().UTC())
	s.invalidate(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, models.ActionEventUpdated, uid, id)
	return nil
}

// Delete удаляет событие владельца. Отсутствующее событие не является ошибкой.
func (s *EventService) Delete(ctx context.Context, uid, id string) error {
	const op = "services.DeleteEvent"
	ev, err := s.load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		s.log.Info("delete of missing event", slog.String("id", id), slog.String("uid", uid))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.guard.RequireOwnership(uid, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.repo.DeleteEvent(ctx, id)
	s.invalidate(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		s.publish(ctx, models.ActionEventDeleted, uid, id)
	}
	return nil
}

// read возвращает событие из кеша или хранилища. Кеш заполняется только под
// версией, прочитанной до запроса в хранилище: инвалидация, прошедшая за это
// время, отменяет заполнение.
func (s *EventService) read(ctx context.Context, id string) (*models.Event, error) {
	var cached models.Event
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	version, verErr := s.cache.Version(ctx, cacheKey(id))
	if verErr != nil {
		s.log.Warn("failed to read cache version", slog.String("key", cacheKey(id)), sl.Err(verErr))
	}
	ev, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		return ev, nil
	}
	stored, err := s.cache.SetIfVersion(ctx, cacheKey(id), version, ev, s.cacheTTL)
	if err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey(id)), sl.Err(err))
	} else if !stored {
		s.log.Debug("cache fill skipped after invalidation", slog.String("key", cacheKey(id)))
	}
	return ev, nil
}

// load читает событие напрямую из хранилища.
func (s *EventService) load(ctx context.Context, id string) (*models.Event, error) {
	ev, err := s.repo.GetEvent(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *EventService) invalidate(ctx context.Context, id string) {
	if err := s.cache.InvalidateVersion(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
}

func (s *EventService) publish(ctx context.Context, action, uid, eventID string) {
	msg := models.AuditMessage{Action: action, UserUID: uid, EventID: eventID, At: s.now().UTC()}
	if err := s.audit.Publish(ctx, action, msg); err != nil {
		s.metrics.AuditPublishFailures.Inc()
		s.log.Warn("failed to publish audit message", slog.String("action", action), sl.Err(err))
	}
}
