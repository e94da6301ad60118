package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/eventos/internal/models"
)

const eventColumns = `id, owner_uid, title, description, place, date, created_at, updated_at`

// CreateEvent вставляет событие и возвращает присвоенный хранилищем id.
// created_at выставляется базой.
func (s *Storage) CreateEvent(ctx context.Context, ev models.Event) (string, error) {
	const op = "storage.CreateEvent"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	var id string
	query := `INSERT INTO events (owner_uid, title, description, place, date)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		ev.OwnerUID, ev.Title, ev.Description, ev.Place, ev.Date).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetEvent возвращает событие по id.
func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.GetEvent"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	// id не в формате UUID не может существовать в таблице
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	ev, err := scanEvent(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ev, nil
}

// UpdateEvent перезаписывает title, description, place, date и updated_at.
// Остальные поля не меняются.
func (s *Storage) UpdateEvent(ctx context.Context, id string, form models.EventForm, updatedAt time.Time) error {
	const op = "storage.UpdateEvent"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	query := `UPDATE events
			  SET title = $1, description = $2, place = $3, date = $4, updated_at = $5
			  WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		form.Title, form.Description, form.Place, form.Date, updatedAt, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteEvent удаляет событие и возвращает число удалённых строк.
// Удаление отсутствующего события не является ошибкой.
func (s *Storage) DeleteEvent(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteEvent"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListEventsByOwner возвращает все события владельца в порядке создания.
func (s *Storage) ListEventsByOwner(ctx context.Context, uid string) ([]*models.Event, error) {
	const op = "storage.ListEventsByOwner"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE owner_uid = $1
			  ORDER BY created_at, id`
	rows, err := s.DB.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, ev)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*models.Event, error) {
	var (
		ev        models.Event
		updatedAt sql.NullTime
	)
	if err := row.Scan(&ev.ID, &ev.OwnerUID, &ev.Title, &ev.Description,
		&ev.Place, &ev.Date, &ev.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		ev.UpdatedAt = &updatedAt.Time
	}
	return &ev, nil
}
