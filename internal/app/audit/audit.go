// Package audit запускает потребителя очередей аудита.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/eventos/internal/config"
	"github.com/magabrotheeeer/eventos/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/eventos/internal/lib/sl"
	auditservice "github.com/magabrotheeeer/eventos/internal/services/audit"
)

// App — процесс потребителя аудита.
type App struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queues  []rabbitmq.QueueConfig
	service *auditservice.AuditService
	logger  *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.audit.New"

	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("%s: rabbitmq url is not set", op)
	}
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	queues := rabbitmq.GetAuditQueues()
	ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange, queues)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &App{
		conn:    conn,
		ch:      ch,
		queues:  queues,
		service: auditservice.NewAuditService(logger),
		logger:  logger,
	}, nil
}

// Run обрабатывает очереди аудита до отмены ctx. Если брокер закрыл канал
// доставки любой очереди, Run завершается с ошибкой.
func (a *App) Run(ctx context.Context) error {
	err := consume(ctx, a.ch, a.queues, workersPerQueue, a.logger, a.service.Handle)
	if err != nil {
		a.logger.Error("audit consumer stopped", sl.Err(err))
	} else {
		a.logger.Info("audit consumer shutting down gracefully")
	}
	a.close()
	return err
}

const workersPerQueue = 4

// consume запускает чтение всех очередей и ждёт, пока ctx не отменён или
// одна из очередей не перестала доставлять сообщения. Остальные очереди
// останавливаются, начатые обработчики дорабатывают.
func consume(ctx context.Context, ch rabbitmq.Consumer, queues []rabbitmq.QueueConfig, workers int, log *slog.Logger, handler rabbitmq.Handler) error {
	const op = "app.audit.consume"

	ctx, cancel := context.WithCancel(ctx)
	stopped := make(chan string, len(queues))
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	for _, q := range queues {
		done, err := rabbitmq.ConsumeMessages(ctx, ch, q.QueueName, workers, log, handler)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			<-done
			stopped <- name
		}(q.QueueName)
	}

	select {
	case <-ctx.Done():
		return nil
	case name := <-stopped:
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%s: consumer for %s stopped", op, name)
	}
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
}
