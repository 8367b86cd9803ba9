package worker

import (
	"context"
	"sync"
	"time"
)

// BookingLedger интерфейс реестра бронирований
type BookingLedger interface {
	ExpireStale(ctx context.Context) (int64, error)
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	ObserveBookingsExpired(count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Expirer фоновый процесс, переводящий неоплаченные брони в EXPIRED
// после истечения окна оплаты. Освобожденные слоты снова доступны для записи.
type Expirer struct {
	ledger   BookingLedger
	interval time.Duration
	metrics  Metrics
	logger   Logger
	stopOnce sync.Once
	stopChan chan struct{}
}

// NewExpirer создает новый экземпляр фонового процесса
func NewExpirer(ledger BookingLedger, interval time.Duration, metrics Metrics, logger Logger) *Expirer {
	return &Expirer{
		ledger:   ledger,
		interval: interval,
		metrics:  metrics,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновый процесс
func (e *Expirer) Start(ctx context.Context) {
	e.logger.Info("Expirer: starting with interval %s", e.interval)
	go e.run(ctx)
}

// Stop останавливает фоновый процесс. Повторные вызовы безопасны.
func (e *Expirer) Stop() {
	e.stopOnce.Do(func() {
		e.logger.Info("Expirer: stopping")
		close(e.stopChan)
	})
}

func (e *Expirer) run(ctx context.Context) {
	// Первый проход сразу при старте: подбираем брони,
	// зависшие с прошлого запуска сервиса
	e.sweep(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.sweep(ctx)
		case <-e.stopChan:
			e.logger.Info("Expirer: sweep loop stopped")
			return
		case <-ctx.Done():
			e.logger.Info("Expirer: sweep loop cancelled")
			return
		}
	}
}

// sweep выполняет один проход: все брони, ожидающие оплаты дольше окна
// удержания, переводятся в EXPIRED одним условным UPDATE
func (e *Expirer) sweep(ctx context.Context) {
	expired, err := e.ledger.ExpireStale(ctx)
	if err != nil {
		e.logger.Error("Expirer: sweep failed: %v", err)
		return
	}

	if expired > 0 {
		e.metrics.ObserveBookingsExpired(int(expired))
		e.logger.Info("Expirer: released %d expired booking(s)", expired)
	}
}
