// Package health реализует gRPC health-check для оркестраторов.
//
// Checker периодически опрашивает зависимости и выставляет статус сервиса
// "eventos" и общий статус ("") в стандартном grpc.health.v1.Health.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/magabrotheeeer/eventos/internal/lib/sl"
)

// ServiceName — имя сервиса в health-check.
const ServiceName = "eventos"

// Pinger — проверяемая зависимость.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker хранит статусы и обновляет их по результатам проверок.
type Checker struct {
	server   *grpchealth.Server
	checks   map[string]Pinger
	interval time.Duration
	timeout  time.Duration
	log      *slog.Logger
}

// NewChecker создаёт Checker. До первой проверки сервис считается NOT_SERVING.
func NewChecker(log *slog.Logger, checks map[string]Pinger, interval time.Duration) *Checker {
	srv := grpchealth.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{
		server:   srv,
		checks:   checks,
		interval: interval,
		timeout:  2 * time.Second,
		log:      log,
	}
}

// Register регистрирует health-сервис на gRPC-сервере.
func (c *Checker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, c.server)
}

// Check опрашивает все зависимости один раз и обновляет статус.
func (c *Checker) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	const op = "grpc.health.Check"

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	for name, p := range c.checks {
		if err := p.Ping(ctx); err != nil {
			c.log.Warn("dependency is down", slog.String("op", op), slog.String("component", name), sl.Err(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return status
}

// Run проверяет зависимости каждые interval до отмены ctx, затем переводит
// сервис в NOT_SERVING.
func (c *Checker) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}
