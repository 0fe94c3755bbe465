package mirror

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"staffhub/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// claimingOutbox hands each pending task out exactly once, matching the
// store's claim-on-read contract for Due.
type claimingOutbox struct {
	mu        sync.Mutex
	tasks     []models.SyncTask
	delivered []int64
	failed    []failMark
}

type failMark struct {
	id    int64
	final bool
}

func (o *claimingOutbox) Enqueue(ctx context.Context, task *models.SyncTask) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	task.State = models.SyncPending
	o.tasks = append(o.tasks, *task)
	return nil
}

func (o *claimingOutbox) Due(ctx context.Context, limit int) ([]models.SyncTask, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []models.SyncTask
	for i := range o.tasks {
		if len(out) == limit {
			break
		}
		if o.tasks[i].State == models.SyncPending {
			o.tasks[i].State = models.SyncProcessing
			out = append(out, o.tasks[i])
		}
	}
	return out, nil
}

func (o *claimingOutbox) ListFailed(ctx context.Context, companyID string) ([]models.SyncTask, error) {
	return nil, nil
}

func (o *claimingOutbox) ListRecent(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error) {
	return nil, nil
}

func (o *claimingOutbox) MarkDelivered(ctx context.Context, id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.delivered = append(o.delivered, id)
	return nil
}

func (o *claimingOutbox) MarkFailed(ctx context.Context, id int64, lastError string, nextAttempt time.Time, final bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, failMark{id: id, final: final})
	return nil
}

type countingDeliverer struct {
	mu   sync.Mutex
	seen map[string]int
}

func (d *countingDeliverer) Deliver(ctx context.Context, task *models.SyncTask) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[task.DocumentID]++
	return nil
}

type failingDeliverer struct{}

func (failingDeliverer) Deliver(ctx context.Context, task *models.SyncTask) error {
	return errors.New("mirror unreachable")
}

func pendingTask(id int64, documentID string) models.SyncTask {
	return models.SyncTask{
		ID:             id,
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     documentID,
		Operation:      models.SyncOpSet,
		State:          models.SyncPending,
	}
}

func TestDrainOverlapDeliversEachTaskOnce(t *testing.T) {
	outbox := &claimingOutbox{tasks: []models.SyncTask{
		pendingTask(1, "doc-a"),
		pendingTask(2, "doc-b"),
		pendingTask(3, "doc-c"),
	}}
	deliverer := &countingDeliverer{seen: make(map[string]int)}
	w := NewWorker(outbox, deliverer, WorkerConfig{
		Interval:    time.Second,
		BatchSize:   10,
		MaxAttempts: 3,
	}, testLogger())

	// Two drains racing, as a slow batch overlapping the next tick would
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.drain()
		}()
	}
	wg.Wait()

	for doc, n := range deliverer.seen {
		if n != 1 {
			t.Errorf("document %s delivered %d times, want exactly once", doc, n)
		}
	}
	if len(outbox.delivered) != 3 {
		t.Errorf("delivered marks = %d, want 3", len(outbox.delivered))
	}
	if len(outbox.failed) != 0 {
		t.Errorf("failed marks = %v, want none", outbox.failed)
	}
}

func TestDrainParksTaskAfterMaxAttempts(t *testing.T) {
	task := pendingTask(1, "doc-a")
	task.Attempts = 2
	outbox := &claimingOutbox{tasks: []models.SyncTask{task}}
	w := NewWorker(outbox, failingDeliverer{}, WorkerConfig{
		Interval:    time.Second,
		BatchSize:   10,
		MaxAttempts: 3,
	}, testLogger())

	w.drain()

	if len(outbox.failed) != 1 {
		t.Fatalf("failed marks = %v, want one", outbox.failed)
	}
	if !outbox.failed[0].final {
		t.Errorf("third failed attempt should park the task as final")
	}
	if len(outbox.delivered) != 0 {
		t.Errorf("delivered marks = %v, want none", outbox.delivered)
	}
}
