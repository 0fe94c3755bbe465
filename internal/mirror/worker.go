package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-co-op/gocron"

	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/service"
)

// WorkerConfig tunes the outbox drain loop.
type WorkerConfig struct {
	Interval    time.Duration // how often the queue is polled
	BatchSize   int           // max tasks claimed per drain
	MaxAttempts int           // after this many failures a task goes to failed state
}

// Worker drains the sync outbox on a schedule and delivers each task to
// the admin mirror. Delivery failures reschedule the task with exponential
// spacing until attempts run out, then park it for manual retry.
type Worker struct {
	outbox    repositories.OutboxRepository
	deliverer service.SyncDeliverer
	scheduler *gocron.Scheduler
	cfg       WorkerConfig
	logger    *slog.Logger
}

// NewWorker creates an outbox drain worker
func NewWorker(outbox repositories.OutboxRepository, deliverer service.SyncDeliverer, cfg WorkerConfig, logger *slog.Logger) *Worker {
	return &Worker{
		outbox:    outbox,
		deliverer: deliverer,
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		logger:    logger,
	}
}

// Start schedules the drain loop and returns immediately. Singleton mode
// keeps a slow drain from overlapping the next tick in-process; the
// store-level claim in Due covers concurrent server instances.
func (w *Worker) Start() error {
	if _, err := w.scheduler.Every(w.cfg.Interval).SingletonMode().Do(w.drain); err != nil {
		return fmt.Errorf("schedule outbox drain: %w", err)
	}

	w.scheduler.StartAsync()
	w.logger.Info("sync worker started", "interval", w.cfg.Interval, "batch_size", w.cfg.BatchSize)
	return nil
}

// Stop halts the drain loop. In-flight drains finish.
func (w *Worker) Stop() {
	w.scheduler.Stop()
	w.logger.Info("sync worker stopped")
}

// drain claims one batch of due tasks and delivers them in order
func (w *Worker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.Interval*4)
	defer cancel()

	tasks, err := w.outbox.Due(ctx, w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("outbox poll failed", "error", err)
		return
	}

	for i := range tasks {
		w.deliverOne(ctx, &tasks[i])
	}
}

// deliverOne pushes a single task, retrying transient failures briefly
// before recording the outcome.
func (w *Worker) deliverOne(ctx context.Context, task *models.SyncTask) {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)

	err := backoff.Retry(func() error {
		return w.deliverer.Deliver(ctx, task)
	}, policy)
	if err == nil {
		if err := w.outbox.MarkDelivered(ctx, task.ID); err != nil {
			w.logger.Error("mark delivered failed", "task_id", task.ID, "error", err)
		}
		return
	}

	attempts := task.Attempts + 1
	final := attempts >= w.cfg.MaxAttempts
	next := time.Now().UTC().Add(retryDelay(attempts))

	w.logger.Warn("mirror delivery failed",
		"task_id", task.ID,
		"collection", task.CollectionName,
		"document_id", task.DocumentID,
		"attempts", attempts,
		"final", final,
		"error", err,
	)

	if err := w.outbox.MarkFailed(ctx, task.ID, err.Error(), next, final); err != nil {
		w.logger.Error("mark failed errored", "task_id", task.ID, "error", err)
	}
}

// retryDelay spaces redelivery attempts exponentially, capped at 10 minutes.
func retryDelay(attempts int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempts))) * 15 * time.Second
	if d > 10*time.Minute {
		d = 10 * time.Minute
	}
	return d
}
