// Package services содержит бизнес-логику регистрации, входа и выхода пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	"github.com/magabrotheeeer/eventos/internal/metrics"
	"github.com/magabrotheeeer/eventos/internal/models"
	"github.com/magabrotheeeer/eventos/internal/session"
	"github.com/magabrotheeeer/eventos/internal/storage"
)

// ProfileRepository описывает хранилище профилей.
type ProfileRepository interface {
	// CreateProfile сохраняет профиль нового пользователя.
	CreateProfile(ctx context.Context, user models.User) error
	// GetProfile возвращает профиль по uid или storage.ErrNotFound.
	GetProfile(ctx context.Context, uid string) (*models.User, error)
}

// Publisher отправляет сообщения аудита.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// AuthService отвечает за регистрацию, вход, выход и профиль пользователя.
type AuthService struct {
	verifier identity.Verifier
	sessions session.Store
	profiles ProfileRepository
	audit    Publisher
	metrics  *metrics.Metrics
	log      *slog.Logger
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(
	verifier identity.Verifier,
	sessions session.Store,
	profiles ProfileRepository,
	audit Publisher,
	m *metrics.Metrics,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		verifier: verifier,
		sessions: sessions,
		profiles: profiles,
		audit:    audit,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Register создаёт учётную запись у провайдера и профиль с ролью persona_natural.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	const op = "services.Register"
	uid, err := s.verifier.SignUp(ctx, email, password)
	if err != nil {
		s.countIdentityError(err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	registeredAt := s.now().UTC()
	err = s.profiles.CreateProfile(ctx, models.User{
		UID:          uid,
		Email:        email,
		Role:         models.RoleNaturalPerson,
		RegisteredAt: &registeredAt,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("uid", uid))

	s.publish(ctx, models.AuditMessage{Action: models.ActionUserRegistered, UserUID: uid, At: registeredAt})
	return uid, nil
}

// Login проверяет учётные данные и только при успехе создаёт сессию.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	const op = "services.Login"
	creds, err := s.verifier.SignIn(ctx, email, password)
	if err != nil {
		s.countIdentityError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sess, err := s.sessions.Create(ctx, models.Session{
		UID:   creds.UID,
		Email: creds.Email,
		Token: creds.Token,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// Logout уничтожает сессию.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	const op = "services.Logout"
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Profile возвращает сохранённый профиль пользователя сессии. Если профиля нет,
// возвращается заглушка с email сессии и ролью desconocido.
func (s *AuthService) Profile(ctx context.Context, sess *models.Session) (*models.User, error) {
	const op = "services.Profile"
	user, err := s.profiles.GetProfile(ctx, sess.UID)
	if errors.Is(err, storage.ErrNotFound) {
		return &models.User{
			UID:   sess.UID,
			Email: sess.Email,
			Role:  models.RoleUnknown,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) countIdentityError(err error) {
	code := identity.CodeOf(err)
	if code == "" {
		code = "unavailable"
	}
	s.metrics.IdentityErrors.WithLabelValues(code).Inc()
}

func (s *AuthService) publish(ctx context.Context, msg models.AuditMessage) {
	if err := s.audit.Publish(ctx, msg.Action, msg); err != nil {
		s.metrics.AuditPublishFailures.Inc()
		s.log.Warn("failed to publish audit message", slog.String("action", msg.Action), sl.Err(err))
	}
}
