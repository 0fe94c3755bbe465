package service

import (
	"context"
	"fmt"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/storage"
)

// In-memory fakes for the repository and storage interfaces. Error fields
// inject failures at specific steps.

type fakeTxManager struct{}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeMediaRepo struct {
	records   map[string]*models.MediaRecord
	createErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{records: make(map[string]*models.MediaRecord)}
}

func (f *fakeMediaRepo) Create(ctx context.Context, rec *models.MediaRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeMediaRepo) GetByID(ctx context.Context, scope models.Scope, id string) (*models.MediaRecord, error) {
	rec, ok := f.records[id]
	if !ok || rec.CompanyID != scope.CompanyID || rec.EmployeeID != scope.EmployeeID {
		return nil, fmt.Errorf("media record %s: %w", id, domain.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeMediaRepo) ListByKind(ctx context.Context, scope models.Scope, kind models.MediaKind) ([]models.MediaRecord, error) {
	out := []models.MediaRecord{}
	for _, rec := range f.records {
		if rec.CompanyID == scope.CompanyID && rec.EmployeeID == scope.EmployeeID && rec.Kind == kind {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeMediaRepo) Delete(ctx context.Context, scope models.Scope, id string) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("media record %s: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeMediaRepo) AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error) {
	rec, ok := f.records[id]
	if !ok || rec.Comments == nil {
		return nil, fmt.Errorf("comment thread for %s: %w", id, domain.ErrNotFound)
	}
	rec.Comments = append(rec.Comments, comment)
	return append([]string(nil), rec.Comments...), nil
}

func (f *fakeMediaRepo) CountByKind(ctx context.Context, scope models.Scope) (map[models.MediaKind]int, error) {
	counts := make(map[models.MediaKind]int)
	for _, rec := range f.records {
		if rec.CompanyID == scope.CompanyID && rec.EmployeeID == scope.EmployeeID {
			counts[rec.Kind]++
		}
	}
	return counts, nil
}

type fakeLinkRepo struct {
	records map[string]*models.LinkRecord
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{records: make(map[string]*models.LinkRecord)}
}

func (f *fakeLinkRepo) Create(ctx context.Context, rec *models.LinkRecord) error {
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeLinkRepo) GetByID(ctx context.Context, scope models.Scope, id string) (*models.LinkRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("link record %s: %w", id, domain.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeLinkRepo) List(ctx context.Context, scope models.Scope) ([]models.LinkRecord, error) {
	out := []models.LinkRecord{}
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeLinkRepo) Delete(ctx context.Context, scope models.Scope, id string) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("link record %s: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeLinkRepo) AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("comment thread for %s: %w", id, domain.ErrNotFound)
	}
	rec.Comments = append(rec.Comments, comment)
	return append([]string(nil), rec.Comments...), nil
}

func (f *fakeLinkRepo) Count(ctx context.Context, scope models.Scope) (int, error) {
	return len(f.records), nil
}

type fakeFavoriteRepo struct {
	records   map[string]*models.FavoriteRecord
	deleteErr error
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{records: make(map[string]*models.FavoriteRecord)}
}

func (f *fakeFavoriteRepo) Create(ctx context.Context, rec *models.FavoriteRecord) error {
	for _, existing := range f.records {
		if existing.CompanyID == rec.CompanyID &&
			existing.EmployeeID == rec.EmployeeID &&
			existing.OriginalID == rec.OriginalID {
			return &domain.ConflictError{
				Message:      "item is already in favourites",
				ResourceType: "favourite",
				ResourceID:   existing.ID,
			}
		}
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeFavoriteRepo) List(ctx context.Context, scope models.Scope) ([]models.FavoriteRecord, error) {
	out := []models.FavoriteRecord{}
	for _, rec := range f.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, scope models.Scope, id string) error {
	if _, ok := f.records[id]; !ok {
		return fmt.Errorf("favourite %s: %w", id, domain.ErrNotFound)
	}
	delete(f.records, id)
	return nil
}

func (f *fakeFavoriteRepo) DeleteByOriginalID(ctx context.Context, scope models.Scope, originalID string) ([]string, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	var removed []string
	for id, rec := range f.records {
		if rec.OriginalID == originalID {
			removed = append(removed, id)
			delete(f.records, id)
		}
	}
	return removed, nil
}

type fakeOutbox struct {
	tasks      []models.SyncTask
	nextID     int64
	delivered  []int64
	failed     []int64
	enqueueErr error
}

func (f *fakeOutbox) Enqueue(ctx context.Context, task *models.SyncTask) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.nextID++
	task.ID = f.nextID
	task.State = models.SyncPending
	f.tasks = append(f.tasks, *task)
	return nil
}

// Due claims: handed-out tasks move to processing and are not returned again
func (f *fakeOutbox) Due(ctx context.Context, limit int) ([]models.SyncTask, error) {
	var out []models.SyncTask
	for i := range f.tasks {
		if len(out) == limit {
			break
		}
		if f.tasks[i].State == models.SyncPending {
			f.tasks[i].State = models.SyncProcessing
			out = append(out, f.tasks[i])
		}
	}
	return out, nil
}

func (f *fakeOutbox) ListFailed(ctx context.Context, companyID string) ([]models.SyncTask, error) {
	var out []models.SyncTask
	for _, task := range f.tasks {
		if task.CompanyID == companyID && task.State == models.SyncFailed {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeOutbox) ListRecent(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error) {
	return append([]models.SyncTask(nil), f.tasks...), nil
}

func (f *fakeOutbox) MarkDelivered(ctx context.Context, id int64) error {
	f.delivered = append(f.delivered, id)
	return nil
}

func (f *fakeOutbox) MarkFailed(ctx context.Context, id int64, lastError string, nextAttempt time.Time, final bool) error {
	f.failed = append(f.failed, id)
	return nil
}

// ops returns (operation, collection) pairs in enqueue order
func (f *fakeOutbox) ops() []string {
	var out []string
	for _, task := range f.tasks {
		out = append(out, string(task.Operation)+" "+task.CollectionName)
	}
	return out
}

type fakeAssetStore struct {
	uploads   map[string][]byte
	deleted   []string
	private   bool // private buckets yield no durable URL on upload
	uploadErr error
	deleteErr error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{uploads: make(map[string][]byte)}
}

func (f *fakeAssetStore) Upload(ctx context.Context, key, contentType string, data []byte) (*storage.StoredAsset, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads[key] = data
	url := ""
	if !f.private {
		url = "https://assets.example.com/" + key
	}
	return &storage.StoredAsset{
		URL:          url,
		Key:          key,
		Format:       "bin",
		ResourceType: "raw",
		Bytes:        int64(len(data)),
	}, nil
}

func (f *fakeAssetStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeAssetStore) DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://assets.example.com/" + key + "?signed", nil
}
