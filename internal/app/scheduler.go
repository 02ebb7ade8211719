package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"go.uber.org/zap"
)

// DirIngester импортирует все PDF из каталога
type DirIngester interface {
	IngestDir(ctx context.Context, dir string, opts service.IngestOptions) ([]*service.IngestResult, error)
}

// Scheduler периодически переимпортирует каталог с таблицами
type Scheduler struct {
	ingester DirIngester
	dir      string
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

func NewScheduler(ingester DirIngester, dir string, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		ingester: ingester,
		dir:      dir,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start делает первый импорт синхронно, затем (если interval > 0) запускает фоновый цикл
func (s *Scheduler) Start(ctx context.Context) {
	s.ingest(ctx)

	if s.interval <= 0 {
		s.logger.Info("Periodic ingestion disabled")
		close(s.done)
		return
	}

	s.logger.Info("Starting ingestion scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает цикл и ждёт его завершения
func (s *Scheduler) Stop() {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.ingest(ctx)
		case <-s.stopChan:
			s.logger.Info("Ingestion scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Ingestion scheduler cancelled")
			return
		}
	}
}

func (s *Scheduler) ingest(ctx context.Context) {
	results, err := s.ingester.IngestDir(ctx, s.dir, service.IngestOptions{})
	if err != nil {
		// Ошибки отдельных файлов не мешают импорту остальных
		s.logger.Error("Ingestion finished with errors", zap.String("dir", s.dir), zap.Error(err))
	}

	imported := 0
	for _, r := range results {
		if !r.Skipped {
			imported++
		}
	}
	s.logger.Info("Ingestion pass completed",
		zap.String("dir", s.dir),
		zap.Int("files", len(results)),
		zap.Int("imported", imported))
}
