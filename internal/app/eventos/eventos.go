// Package eventos собирает зависимости приложения и запускает HTTP- и gRPC-серверы.
package eventos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/magabrotheeeer/eventos/internal/access"
	"github.com/magabrotheeeer/eventos/internal/cache"
	"github.com/magabrotheeeer/eventos/internal/config"
	grpchealth "github.com/magabrotheeeer/eventos/internal/grpc/health"
	"github.com/magabrotheeeer/eventos/internal/http/handlers/health"
	"github.com/magabrotheeeer/eventos/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventos/internal/identity"
	"github.com/magabrotheeeer/eventos/internal/identity/firebase"
	"github.com/magabrotheeeer/eventos/internal/identity/local"
	"github.com/magabrotheeeer/eventos/internal/lib/jwt"
	"github.com/magabrotheeeer/eventos/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/eventos/internal/metrics"
	"github.com/magabrotheeeer/eventos/internal/migrations"
	authservice "github.com/magabrotheeeer/eventos/internal/services/auth"
	eventservice "github.com/magabrotheeeer/eventos/internal/services/events"
	"github.com/magabrotheeeer/eventos/internal/session"
	"github.com/magabrotheeeer/eventos/internal/storage"
)

type App struct {
	server     *http.Server
	grpcServer *grpc.Server
	listener   net.Listener
	checker    *grpchealth.Checker
	logger     *slog.Logger
	db         *storage.Storage
	cache      *cache.Cache
	amqpConn   *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.eventos.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	audit, err := app.auditPublisher(ctx, cfg)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)
	guard := access.NewGuard(access.NewPrometheusRecorder(m.AccessDecisions))

	tokens := jwt.NewJWTMaker(cfg.SecretKey, cfg.TTL)
	sessions := session.NewRedisStore(cacheRedis, cfg.TTL)

	authService := authservice.NewAuthService(newVerifier(cfg, db, tokens), sessions, db, audit, m, logger)
	eventService := eventservice.NewEventService(db, cacheRedis, guard, audit, m, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Auth:     authService,
		Events:   eventService,
		Sessions: sessions,
		Signer:   session.NewSigner(tokens),
		Cookie: middlewarectx.CookieConfig{
			Name:   cfg.CookieName,
			TTL:    cfg.TTL,
			Secure: cfg.CookieSecure,
		},
		Guard:        guard,
		Metrics:      m,
		Registry:     registry,
		LoginLimiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		Health:       map[string]health.Pinger{"postgres": db, "redis": cacheRedis},
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.GRPCHealthAddress != "" {
		lis, err := net.Listen("tcp", cfg.GRPCHealthAddress)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.listener = lis
		app.grpcServer = grpc.NewServer()
		app.checker = grpchealth.NewChecker(logger,
			map[string]grpchealth.Pinger{"postgres": db, "redis": cacheRedis}, 10*time.Second)
		app.checker.Register(app.grpcServer)
	}

	return app, nil
}

func newVerifier(cfg *config.Config, db *storage.Storage, tokens jwt.Maker) identity.Verifier {
	if cfg.Provider == "local" {
		return local.New(db, tokens, cfg.MaxFailures, cfg.FailureWindow)
	}
	return firebase.NewClient(cfg.FirebaseAPIKey, cfg.FirebaseURL, cfg.Identity.Timeout)
}

// auditPublisher подключается к RabbitMQ; без URL аудит отключён.
func (a *App) auditPublisher(ctx context.Context, cfg *config.Config) (eventservice.Publisher, error) {
	if cfg.RabbitMQ.URL == "" {
		a.logger.Info("rabbitmq url is empty, audit publishing disabled")
		return rabbitmq.NopPublisher{}, nil
	}
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, rabbitmq.GetAuditQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	a.amqpConn = conn
	return rabbitmq.NewPublisher(ch, cfg.Exchange), nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	if a.grpcServer != nil {
		go a.checker.Run(ctx)
		go func() {
			a.logger.Info("gRPC health service listening on", slog.String("address", a.listener.Addr().String()))
			if err := a.grpcServer.Serve(a.listener); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.grpcServer != nil {
			a.grpcServer.GracefulStop()
		}
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqpConn != nil {
		_ = a.amqpConn.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
