package logout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/eventos/internal/http/flash"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func TestLogoutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cookie := middlewarectx.CookieConfig{Name: "sessionid", TTL: time.Hour}

	tests := []struct {
		name         string
		err          error
		wantLocation string
		wantCleared  bool
		wantFlash    []string
	}{
		{
			name:         "сессия уничтожена",
			wantLocation: middlewarectx.LoginPath,
			wantCleared:  true,
			wantFlash:    []string{"Sesión cerrada exitosamente."},
		},
		{
			name:         "ошибка хранилища оставляет сессию",
			err:          errors.New("redis down"),
			wantLocation: middlewarectx.HomePath,
			wantFlash:    []string{"Error al cerrar sesión: redis down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Logout", mock.Anything, "sid-1").Return(tt.err)

			req := httptest.NewRequest(http.MethodGet, "/logout/", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			ctx = middlewarectx.WithSession(ctx, &models.Session{ID: "sid-1", UID: "u1"})
			w := httptest.NewRecorder()

			New(logger, svc, cookie).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))

			var cleared bool
			var fc *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == "sessionid" && c.MaxAge < 0 {
					cleared = true
				}
				if c.Name == flash.CookieName {
					fc = c
				}
			}
			assert.Equal(t, tt.wantCleared, cleared)

			require.NotNil(t, fc)
			next := httptest.NewRequest(http.MethodGet, tt.wantLocation, nil)
			next.AddCookie(fc)
			assert.Equal(t, tt.wantFlash, flash.Pop(httptest.NewRecorder(), next))
			svc.AssertExpectations(t)
		})
	}
}

func TestLogoutHandler_NoSession(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)

	w := httptest.NewRecorder()
	New(logger, svc, middlewarectx.CookieConfig{Name: "sessionid"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logout/", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middlewarectx.LoginPath, w.Header().Get("Location"))
	svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
