package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"staffhub/internal/classify"
	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testScope() models.Scope {
	return models.Scope{CompanyID: "acme", EmployeeID: "emp-1"}
}

type mediaFixture struct {
	mediaRepo *fakeMediaRepo
	linkRepo  *fakeLinkRepo
	favRepo   *fakeFavoriteRepo
	outbox    *fakeOutbox
	assets    *fakeAssetStore
	broker    *CommentBroker
	svc       services.MediaService
}

func newMediaFixture(t *testing.T) *mediaFixture {
	t.Helper()

	classifier, err := classify.NewClassifier()
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	f := &mediaFixture{
		mediaRepo: newFakeMediaRepo(),
		linkRepo:  newFakeLinkRepo(),
		favRepo:   newFakeFavoriteRepo(),
		outbox:    &fakeOutbox{},
		assets:    newFakeAssetStore(),
		broker:    NewCommentBroker(),
	}
	f.svc = NewMediaService(f.mediaRepo, f.linkRepo, f.favRepo, f.outbox, &fakeTxManager{}, f.assets, classifier, f.broker, testLogger())
	return f
}

func uploadRequest(fileName string) *services.UploadMediaRequest {
	return &services.UploadMediaRequest{
		FileName:    fileName,
		ContentType: "application/octet-stream",
		Data:        []byte("content"),
		Title:       "Quarterly report",
	}
}

func TestUploadMediaImageRecordShape(t *testing.T) {
	f := newMediaFixture(t)

	rec, err := f.svc.UploadMedia(context.Background(), testScope(), uploadRequest("photo.JPG"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	if rec.Kind != models.KindImages {
		t.Errorf("kind = %q, want images", rec.Kind)
	}
	if !strings.HasPrefix(rec.ID, "images-") {
		t.Errorf("id = %q, want images- prefix", rec.ID)
	}
	if rec.Comments == nil || len(rec.Comments) != 0 {
		t.Errorf("comments = %#v, want empty non-nil slice", rec.Comments)
	}
	if rec.DocumentID != nil || rec.DocumentGroupID != nil {
		t.Errorf("image record should carry no document grouping fields")
	}
	if len(f.outbox.tasks) != 1 || f.outbox.tasks[0].CollectionName != "data_images" {
		t.Errorf("outbox = %v, want one set for data_images", f.outbox.ops())
	}
	if f.outbox.tasks[0].Operation != models.SyncOpSet {
		t.Errorf("operation = %q, want set", f.outbox.tasks[0].Operation)
	}
}

func TestUploadMediaDocumentRecordShape(t *testing.T) {
	f := newMediaFixture(t)

	rec, err := f.svc.UploadMedia(context.Background(), testScope(), uploadRequest("report.pdf"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	if rec.Kind != models.KindDocuments {
		t.Errorf("kind = %q, want documents", rec.Kind)
	}
	if rec.Comments != nil {
		t.Errorf("comments = %#v, want nil for documents", rec.Comments)
	}
	if rec.DocumentID == nil || *rec.DocumentID != rec.ID {
		t.Errorf("document_id should equal the record id")
	}
	if rec.DocumentGroupID == nil || *rec.DocumentGroupID == "" {
		t.Errorf("document_group_id should be generated when not supplied")
	}
}

func TestUploadMediaUnknownExtensionDefaultsToDocuments(t *testing.T) {
	f := newMediaFixture(t)

	rec, err := f.svc.UploadMedia(context.Background(), testScope(), uploadRequest("data.xyz"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if rec.Kind != models.KindDocuments {
		t.Errorf("kind = %q, want documents fallback", rec.Kind)
	}
}

func TestUploadMediaStorageFailureWritesNoRecord(t *testing.T) {
	f := newMediaFixture(t)
	f.assets.uploadErr = errors.New("bucket unreachable")

	_, err := f.svc.UploadMedia(context.Background(), testScope(), uploadRequest("photo.jpg"))
	if err == nil {
		t.Fatal("expected error")
	}

	var storageErr *domain.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("error type = %T, want *domain.StorageError", err)
	}
	if storageErr.Error() != "upload failed" {
		t.Errorf("message = %q, want the fixed operation message", storageErr.Error())
	}
	if strings.Contains(err.Error(), "bucket unreachable") {
		t.Errorf("provider detail leaked into error: %q", err.Error())
	}
	if len(f.mediaRepo.records) != 0 {
		t.Errorf("record written despite upload failure")
	}
	if len(f.outbox.tasks) != 0 {
		t.Errorf("sync task queued despite upload failure")
	}
}

func TestUploadMediaInsertFailureLeavesOrphanAsset(t *testing.T) {
	f := newMediaFixture(t)
	f.mediaRepo.createErr = errors.New("insert exploded")

	_, err := f.svc.UploadMedia(context.Background(), testScope(), uploadRequest("song.mp3"))
	if err == nil {
		t.Fatal("expected error")
	}

	if len(f.assets.uploads) != 1 {
		t.Fatalf("uploads = %d, want the asset stored before the failed insert", len(f.assets.uploads))
	}
	// No compensating delete: the asset stays orphaned
	if len(f.assets.deleted) != 0 {
		t.Errorf("asset deleted = %v, want no compensating delete", f.assets.deleted)
	}
}

func TestUploadMediaValidation(t *testing.T) {
	f := newMediaFixture(t)

	tests := []struct {
		name string
		req  *services.UploadMediaRequest
	}{
		{"missing title", &services.UploadMediaRequest{FileName: "a.jpg", Data: []byte("x")}},
		{"empty file", &services.UploadMediaRequest{FileName: "a.jpg", Title: "t"}},
		{"missing file name", &services.UploadMediaRequest{Title: "t", Data: []byte("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.UploadMedia(context.Background(), testScope(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestPrivateBucketReadsCarrySignedURLs(t *testing.T) {
	f := newMediaFixture(t)
	f.assets.private = true
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("photo.jpg"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	if !strings.HasSuffix(rec.AssetURL, "?signed") {
		t.Errorf("upload response url = %q, want a signed link", rec.AssetURL)
	}
	// Signed links expire, so the stored row must not keep one
	if stored := f.mediaRepo.records[rec.ID]; stored.AssetURL != "" {
		t.Errorf("stored url = %q, want empty on a private bucket", stored.AssetURL)
	}

	records, err := f.svc.ListMedia(context.Background(), scope, models.KindImages)
	if err != nil {
		t.Fatalf("ListMedia: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if !strings.HasSuffix(records[0].AssetURL, "?signed") {
		t.Errorf("listed url = %q, want a signed link", records[0].AssetURL)
	}
}

func TestPublicBucketReadsKeepStoredURLs(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("photo.jpg"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	records, err := f.svc.ListMedia(context.Background(), scope, models.KindImages)
	if err != nil {
		t.Fatalf("ListMedia: %v", err)
	}
	if len(records) != 1 || records[0].AssetURL != rec.AssetURL {
		t.Errorf("listed url = %q, want the stored public url %q", records[0].AssetURL, rec.AssetURL)
	}
	if strings.Contains(records[0].AssetURL, "?signed") {
		t.Errorf("public url should not be re-signed: %q", records[0].AssetURL)
	}
}

func TestDeleteMediaCascadesFavourites(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("photo.jpg"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	f.favRepo.records["fav-1"] = &models.FavoriteRecord{
		ID: "fav-1", CompanyID: scope.CompanyID, EmployeeID: scope.EmployeeID, OriginalID: rec.ID,
	}

	if err := f.svc.DeleteMedia(context.Background(), scope, rec.ID); err != nil {
		t.Fatalf("DeleteMedia: %v", err)
	}

	if len(f.mediaRepo.records) != 0 {
		t.Errorf("record still present after delete")
	}
	if len(f.favRepo.records) != 0 {
		t.Errorf("favourite not cascaded")
	}

	var sawRecordDelete, sawFavouriteDelete bool
	for _, task := range f.outbox.tasks {
		if task.Operation != models.SyncOpDelete {
			continue
		}
		switch task.CollectionName {
		case "data_images":
			sawRecordDelete = true
		case models.FavoriteCollection:
			sawFavouriteDelete = true
		}
	}
	if !sawRecordDelete || !sawFavouriteDelete {
		t.Errorf("outbox = %v, want deletes for record and favourite", f.outbox.ops())
	}
}

func TestDeleteMediaSurvivesAssetDeleteFailure(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("clip.mp4"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	f.assets.deleteErr = errors.New("remote host down")

	if err := f.svc.DeleteMedia(context.Background(), scope, rec.ID); err != nil {
		t.Fatalf("DeleteMedia should succeed despite asset delete failure, got %v", err)
	}
	if len(f.mediaRepo.records) != 0 {
		t.Errorf("record still present after delete")
	}
}

func TestDeleteMediaSurvivesFavouriteCascadeFailure(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("photo.jpg"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	f.favRepo.deleteErr = errors.New("favourites table locked")

	if err := f.svc.DeleteMedia(context.Background(), scope, rec.ID); err != nil {
		t.Fatalf("DeleteMedia should swallow favourite cascade failure, got %v", err)
	}
}

func TestDeleteMediaNotFound(t *testing.T) {
	f := newMediaFixture(t)

	err := f.svc.DeleteMedia(context.Background(), testScope(), "images-123-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestAddCommentPublishesFullList(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("photo.jpg"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	updates, cancel := f.broker.Subscribe(rec.ID)
	defer cancel()

	first, err := f.svc.AddComment(context.Background(), scope, &services.AddCommentRequest{
		DocumentID: rec.ID, Comment: "looks good", Collection: "images",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	second, err := f.svc.AddComment(context.Background(), scope, &services.AddCommentRequest{
		DocumentID: rec.ID, Comment: "looks good", Collection: "images",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	// Append-only, duplicates included
	if len(first) != 1 || len(second) != 2 {
		t.Errorf("comment lists = %d then %d, want 1 then 2", len(first), len(second))
	}

	got := <-updates
	if len(got) != 1 || got[0] != "looks good" {
		t.Errorf("published list = %#v, want the full list after first append", got)
	}
}

func TestAddCommentOnDocumentRejected(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	rec, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("report.pdf"))
	if err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}

	_, err = f.svc.AddComment(context.Background(), scope, &services.AddCommentRequest{
		DocumentID: rec.ID, Comment: "hi", Collection: "documents",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("error = %v, want validation rejection of documents collection", err)
	}
}

func TestMediaCountsAggregatesLinks(t *testing.T) {
	f := newMediaFixture(t)
	scope := testScope()

	if _, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("a.jpg")); err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	if _, err := f.svc.UploadMedia(context.Background(), scope, uploadRequest("b.pdf")); err != nil {
		t.Fatalf("UploadMedia: %v", err)
	}
	f.linkRepo.records["link-1"] = &models.LinkRecord{ID: "link-1", CompanyID: scope.CompanyID, EmployeeID: scope.EmployeeID}

	counts, err := f.svc.MediaCounts(context.Background(), scope)
	if err != nil {
		t.Fatalf("MediaCounts: %v", err)
	}

	if counts.Images != 1 || counts.Documents != 1 || counts.Links != 1 {
		t.Errorf("counts = %+v, want images=1 documents=1 links=1", counts)
	}
	if counts.Audios != 0 || counts.Videos != 0 {
		t.Errorf("counts = %+v, want zero audios and videos", counts)
	}
}
