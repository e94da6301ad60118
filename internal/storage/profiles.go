package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/eventos/internal/models"
)

// CreateProfile сохраняет профиль пользователя.
func (s *Storage) CreateProfile(ctx context.Context, user models.User) error {
	const op = "storage.CreateProfile"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO profiles (uid, email, role, registered_at)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query, user.UID, user.Email, user.Role, user.RegisteredAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProfile возвращает профиль по uid.
func (s *Storage) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetProfile"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT uid, email, role, registered_at
			  FROM profiles
			  WHERE uid = $1`
	var (
		u            models.User
		registeredAt sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx, query, uid).Scan(&u.UID, &u.Email, &u.Role, &registeredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if registeredAt.Valid {
		u.RegisteredAt = &registeredAt.Time
	}
	return &u, nil
}
