package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/eventos/internal/models"
)

// CreateCredential сохраняет учётные данные локального провайдера.
// Повторный email даёт ErrAlreadyExists.
func (s *Storage) CreateCredential(ctx context.Context, cred models.Credential) error {
	const op = "storage.CreateCredential"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO credentials (uid, email, password_hash, disabled)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query, cred.UID, cred.Email, cred.PasswordHash, cred.Disabled); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCredentialByEmail возвращает учётные данные по email.
func (s *Storage) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	const op = "storage.GetCredentialByEmail"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT uid, email, password_hash, disabled
			  FROM credentials
			  WHERE email = $1`
	var c models.Credential
	err := s.DB.QueryRowContext(ctx, query, email).Scan(&c.UID, &c.Email, &c.PasswordHash, &c.Disabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &c, nil
}
