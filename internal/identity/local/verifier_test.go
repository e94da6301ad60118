package local

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/lib/jwt"
	"github.com/magabrotheeeer/eventos/internal/lib/password"
	"github.com/magabrotheeeer/eventos/internal/models"
	"github.com/magabrotheeeer/eventos/internal/storage"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCredential(ctx context.Context, cred models.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockRepository) GetCredentialByEmail(ctx context.Context, email string) (*models.Credential, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credential), args.Error(1)
}

func newVerifier(repo CredentialRepository, maxFailures int) (*Verifier, *jwt.MakerImpl) {
	maker := jwt.NewJWTMaker("local-secret", time.Hour)
	return New(repo, maker, maxFailures, time.Minute), maker
}

func storedCredential(t *testing.T, disabled bool) *models.Credential {
	t.Helper()
	hash, err := password.GetHash("secret1")
	require.NoError(t, err)
	return &models.Credential{UID: "u1", Email: "ana@example.com", PasswordHash: hash, Disabled: disabled}
}

func TestVerifier_SignUp(t *testing.T) {
	tests := []struct {
		name     string
		password string
		setup    func(r *MockRepository)
		wantCode string
		wantErr  error
	}{
		{
			name:     "success",
			password: "secret1",
			setup: func(r *MockRepository) {
				r.On("CreateCredential", mock.Anything, mock.MatchedBy(func(c models.Credential) bool {
					return c.Email == "ana@example.com" && c.UID != "" &&
						password.CompareHash(c.PasswordHash, "secret1") == nil
				})).Return(nil)
			},
		},
		{
			name:     "weak password",
			password: "123",
			setup:    func(*MockRepository) {},
			wantCode: identity.CodeWeakPassword,
		},
		{
			name:     "email exists",
			password: "secret1",
			setup: func(r *MockRepository) {
				r.On("CreateCredential", mock.Anything, mock.Anything).Return(storage.ErrAlreadyExists)
			},
			wantCode: identity.CodeEmailExists,
		},
		{
			name:     "storage failure",
			password: "secret1",
			setup: func(r *MockRepository) {
				r.On("CreateCredential", mock.Anything, mock.Anything).Return(errors.New("db down"))
			},
			wantErr: identity.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(repo)
			v, _ := newVerifier(repo, 5)

			uid, err := v.SignUp(context.Background(), " Ana@Example.com ", tt.password)
			switch {
			case tt.wantCode != "":
				assert.Equal(t, tt.wantCode, identity.CodeOf(err))
				assert.Empty(t, uid)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, uid)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestVerifier_SignIn(t *testing.T) {
	tests := []struct {
		name     string
		password string
		setup    func(t *testing.T, r *MockRepository)
		wantCode string
	}{
		{
			name:     "success",
			password: "secret1",
			setup: func(t *testing.T, r *MockRepository) {
				r.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(storedCredential(t, false), nil)
			},
		},
		{
			name:     "wrong password",
			password: "nope123",
			setup: func(t *testing.T, r *MockRepository) {
				r.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(storedCredential(t, false), nil)
			},
			wantCode: identity.CodeInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "secret1",
			setup: func(_ *testing.T, r *MockRepository) {
				r.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(nil, storage.ErrNotFound)
			},
			wantCode: identity.CodeEmailNotFound,
		},
		{
			name:     "disabled",
			password: "secret1",
			setup: func(t *testing.T, r *MockRepository) {
				r.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(storedCredential(t, true), nil)
			},
			wantCode: identity.CodeUserDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setup(t, repo)
			v, maker := newVerifier(repo, 5)

			creds, err := v.SignIn(context.Background(), "ana@example.com", tt.password)
			if tt.wantCode != "" {
				assert.Nil(t, creds)
				assert.Equal(t, tt.wantCode, identity.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", creds.UID)

			claims, err := maker.ParseToken(creds.Token)
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.UserUID)
			assert.Equal(t, "ana@example.com", claims.Email)
		})
	}
}

func TestVerifier_SignIn_TooManyAttempts(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(storedCredential(t, false), nil)
	repo.On("GetCredentialByEmail", mock.Anything, "other@example.com").Return(nil, storage.ErrNotFound)
	v, _ := newVerifier(repo, 3)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	for range 3 {
		_, err := v.SignIn(context.Background(), "ana@example.com", "wrong-pass")
		assert.Equal(t, identity.CodeInvalidCredentials, identity.CodeOf(err))
	}

	_, err := v.SignIn(context.Background(), "ana@example.com", "secret1")
	assert.Equal(t, identity.CodeTooManyAttempts, identity.CodeOf(err))

	_, err = v.SignIn(context.Background(), "other@example.com", "x")
	assert.NotEqual(t, identity.CodeTooManyAttempts, identity.CodeOf(err))

	now = now.Add(time.Minute)
	creds, err := v.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", creds.UID)
}

func TestVerifier_SignIn_PrunesRecoveredLimiters(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetCredentialByEmail", mock.Anything, "ana@example.com").Return(storedCredential(t, false), nil)
	repo.On("GetCredentialByEmail", mock.Anything, mock.Anything).Return(nil, storage.ErrNotFound)
	v, _ := newVerifier(repo, 3)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	for i := range 100 {
		_, err := v.SignIn(context.Background(), fmt.Sprintf("user%d@example.com", i), "x")
		assert.Equal(t, identity.CodeEmailNotFound, identity.CodeOf(err))
	}
	assert.Len(t, v.failures, 100)

	now = now.Add(30 * time.Second)
	for range 3 {
		_, err := v.SignIn(context.Background(), "ana@example.com", "wrong-pass")
		assert.Equal(t, identity.CodeInvalidCredentials, identity.CodeOf(err))
	}

	now = now.Add(30 * time.Second)
	creds, err := v.SignIn(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", creds.UID)

	assert.Len(t, v.failures, 1)
	assert.Contains(t, v.failures, "ana@example.com")
}
