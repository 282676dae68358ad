package backend

import (
	"context"
	"fmt"
	"log/slog"

	"costmanager/internal/events"
	"costmanager/internal/storage"
	"costmanager/internal/store/memory"
)

// DefaultFactory creates backends from configuration.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *DefaultFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "path", config.SQLiteDBPath)

	publisher, pubCleanup, err := f.createPublisher(config)
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &Result{
		Costs:     repo,
		Settings:  repo,
		Publisher: publisher,
		Cleanup:   combineCleanup(pubCleanup, repo.Close),
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	st := memory.New()
	f.logger.Info("Initialized memory backend")

	publisher, pubCleanup, err := f.createPublisher(config)
	if err != nil {
		return nil, err
	}

	return &Result{
		Costs:     st,
		Settings:  st,
		Publisher: publisher,
		Cleanup:   combineCleanup(pubCleanup),
	}, nil
}

// createPublisher connects the optional event pipeline. A missing AMQP URL
// disables it; a configured but unreachable broker is a startup error.
func (f *DefaultFactory) createPublisher(config Config) (*events.Publisher, CleanupFunc, error) {
	if config.AMQPURL == "" {
		f.logger.Info("AMQP disabled - no AMQP_URL provided")
		return nil, noopCleanup, nil
	}

	publisher, err := events.NewPublisher(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize AMQP publisher: %w", err)
	}
	f.logger.Info("AMQP publisher initialized",
		"exchange", config.AMQPExchange, "queue", config.AMQPQueue)
	return publisher, publisher.Close, nil
}
