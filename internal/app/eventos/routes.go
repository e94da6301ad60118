package eventos

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/eventos/docs"
	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/auth/home"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/event/create"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/event/edit"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/event/list"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/event/remove"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/health"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/metrics"
)

// AuthService — операции учётных записей, нужные обработчикам.
type AuthService interface {
	register.Service
	login.Service
	logout.Service
	home.Service
}

// EventService — операции над событиями, нужные обработчикам.
type EventService interface {
	list.Service
	create.Service
	edit.Service
	remove.Service
}

// SessionSigner подписывает и проверяет cookie сессии.
type SessionSigner interface {
	login.Signer
	middlewarectx.CookieVerifier
}

// Deps — зависимости маршрутов.
type Deps struct {
	Logger       *slog.Logger
	Auth         AuthService
	Events       EventService
	Sessions     middlewarectx.SessionGetter
	Signer       SessionSigner
	Cookie       middlewarectx.CookieConfig
	Guard        *access.Guard
	Metrics      *metrics.Metrics
	Registry     *prometheus.Registry
	LoginLimiter *rate.Limiter
	Health       map[string]health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.Metrics(d.Metrics),
		middlewarectx.LoadSession(d.Logger, d.Sessions, d.Signer, d.Cookie),
	)

	// Открытые страницы
	r.Get("/registro/", register.New(d.Logger, d.Auth).ServeHTTP)
	r.Post("/registro/", register.New(d.Logger, d.Auth).ServeHTTP)
	loginHandler := login.New(d.Logger, d.Auth, d.Signer, d.Cookie)
	r.Get("/login/", loginHandler.ServeHTTP)
	r.With(middlewarectx.RateLimitMiddleware(d.Logger, d.LoginLimiter)).Post("/login/", loginHandler.ServeHTTP)

	// Страницы только для аутентифицированной сессии
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireSession(d.Logger, d.Guard))

		r.Get("/home/", home.New(d.Logger, d.Auth).ServeHTTP)
		r.Get("/logout/", logout.New(d.Logger, d.Auth, d.Cookie).ServeHTTP)

		r.Get("/eventos/", list.New(d.Logger, d.Events).ServeHTTP)

		createHandler := create.New(d.Logger, d.Events)
		r.Get("/eventos/crear/", createHandler.ServeHTTP)
		r.Post("/eventos/crear/", createHandler.ServeHTTP)

		editHandler := edit.New(d.Logger, d.Events)
		r.Get("/eventos/editar/{id}/", editHandler.ServeHTTP)
		r.Post("/eventos/editar/{id}/", editHandler.ServeHTTP)

		removeHandler := remove.New(d.Logger, d.Events)
		r.Get("/eventos/eliminar/{id}/", removeHandler.ServeHTTP)
		r.Post("/eventos/eliminar/{id}/", removeHandler.ServeHTTP)
	})

	r.Get("/healthz", health.New(d.Logger, d.Health).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
