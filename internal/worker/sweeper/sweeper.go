package sweeper

import (
	"context"
	"time"
)

// DefaultInterval период синхронизации кэша статусов
const DefaultInterval = 60 * time.Second

// BookingSweeper переводит кэш статусов завершившихся сессий в completed
type BookingSweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Worker периодически вызывает Sweep до отмены контекста
type Worker struct {
	sweeper      BookingSweeper
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// New создает воркер; interval <= 0 заменяется на DefaultInterval
func New(sweeper BookingSweeper, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		sweeper:      sweeper,
		interval:     interval,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Run блокируется до отмены ctx; первый проход выполняется сразу
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Sweeper: started with interval %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Sweeper: stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	count, err := w.sweeper.Sweep(ctx, w.timeProvider.Now())
	if err != nil {
		// Следующий тик повторит попытку
		w.logger.Error("Sweeper: sweep failed: %v", err)
		return
	}
	if count > 0 {
		w.logger.Info("Sweeper: marked %d bookings completed", count)
	}
}
