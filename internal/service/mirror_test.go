package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/services"
)

type fakeMirrorRepo struct {
	data map[string]json.RawMessage
}

func newFakeMirrorRepo() *fakeMirrorRepo {
	return &fakeMirrorRepo{data: make(map[string]json.RawMessage)}
}

func mirrorKey(companyID, collectionName, documentID string) string {
	return companyID + "/" + collectionName + "/" + documentID
}

func (f *fakeMirrorRepo) Set(ctx context.Context, companyID, collectionName, documentID string, data json.RawMessage) error {
	f.data[mirrorKey(companyID, collectionName, documentID)] = data
	return nil
}

func (f *fakeMirrorRepo) Delete(ctx context.Context, companyID, collectionName, documentID string) error {
	// Idempotent: absent keys are not an error
	delete(f.data, mirrorKey(companyID, collectionName, documentID))
	return nil
}

func (f *fakeMirrorRepo) List(ctx context.Context, companyID, collectionName string) ([]models.MirrorRecord, error) {
	out := []models.MirrorRecord{}
	for _, data := range f.data {
		out = append(out, models.MirrorRecord{CompanyID: companyID, CollectionName: collectionName, Data: data})
	}
	return out, nil
}

func TestMirrorApplySetThenDelete(t *testing.T) {
	repo := newFakeMirrorRepo()
	svc := NewMirrorService(repo, testLogger())

	set := &services.ApplyMirrorRequest{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpSet,
		Data:           json.RawMessage(`{"id":"images-1-aa"}`),
	}
	if err := svc.Apply(context.Background(), set); err != nil {
		t.Fatalf("Apply set: %v", err)
	}
	if len(repo.data) != 1 {
		t.Fatalf("mirror rows = %d, want 1", len(repo.data))
	}

	// Set is an upsert: replaying it overwrites, never duplicates
	if err := svc.Apply(context.Background(), set); err != nil {
		t.Fatalf("Apply set replay: %v", err)
	}
	if len(repo.data) != 1 {
		t.Errorf("mirror rows = %d after replay, want 1", len(repo.data))
	}

	del := &services.ApplyMirrorRequest{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpDelete,
	}
	if err := svc.Apply(context.Background(), del); err != nil {
		t.Fatalf("Apply delete: %v", err)
	}
	if len(repo.data) != 0 {
		t.Errorf("mirror rows = %d after delete, want 0", len(repo.data))
	}

	// Deleting an absent document still succeeds
	if err := svc.Apply(context.Background(), del); err != nil {
		t.Errorf("Apply delete replay: %v, want success", err)
	}
}

func TestMirrorApplyValidation(t *testing.T) {
	svc := NewMirrorService(newFakeMirrorRepo(), testLogger())

	tests := []struct {
		name string
		req  *services.ApplyMirrorRequest
	}{
		{"missing company", &services.ApplyMirrorRequest{CollectionName: "data_images", DocumentID: "x", Operation: models.SyncOpDelete}},
		{"missing collection", &services.ApplyMirrorRequest{CompanyID: "acme", DocumentID: "x", Operation: models.SyncOpDelete}},
		{"missing document", &services.ApplyMirrorRequest{CompanyID: "acme", CollectionName: "data_images", Operation: models.SyncOpDelete}},
		{"unknown operation", &services.ApplyMirrorRequest{CompanyID: "acme", CollectionName: "data_images", DocumentID: "x", Operation: "merge"}},
		{"set without data", &services.ApplyMirrorRequest{CompanyID: "acme", CollectionName: "data_images", DocumentID: "x", Operation: models.SyncOpSet}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Apply(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}
