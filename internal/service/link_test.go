package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/services"
)

type linkFixture struct {
	linkRepo *fakeLinkRepo
	favRepo  *fakeFavoriteRepo
	outbox   *fakeOutbox
	svc      services.LinkService
}

func newLinkFixture() *linkFixture {
	f := &linkFixture{
		linkRepo: newFakeLinkRepo(),
		favRepo:  newFakeFavoriteRepo(),
		outbox:   &fakeOutbox{},
	}
	f.svc = NewLinkService(f.linkRepo, f.favRepo, f.outbox, &fakeTxManager{}, testLogger())
	return f
}

func TestAddLinkMapsLinkDataToURL(t *testing.T) {
	f := newLinkFixture()

	rec, err := f.svc.AddLink(context.Background(), testScope(), &services.AddLinkRequest{
		LinkData: "https://example.com/wiki",
		Title:    "Team wiki",
	})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}

	// The linkData input key lands in url and does not survive as-is
	if rec.URL != "https://example.com/wiki" {
		t.Errorf("url = %q", rec.URL)
	}
	if !strings.HasPrefix(rec.ID, "link-") {
		t.Errorf("id = %q, want link- prefix", rec.ID)
	}
	if rec.Comments == nil || len(rec.Comments) != 0 {
		t.Errorf("comments = %#v, want empty non-nil slice", rec.Comments)
	}
	if len(f.outbox.tasks) != 1 || f.outbox.tasks[0].CollectionName != models.LinkCollection {
		t.Errorf("outbox = %v, want one set for %s", f.outbox.ops(), models.LinkCollection)
	}
}

func TestAddLinkValidation(t *testing.T) {
	f := newLinkFixture()

	tests := []struct {
		name string
		req  *services.AddLinkRequest
	}{
		{"missing url", &services.AddLinkRequest{Title: "t"}},
		{"not a url", &services.AddLinkRequest{LinkData: "not a url at all", Title: "t"}},
		{"missing title", &services.AddLinkRequest{LinkData: "https://example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddLink(context.Background(), testScope(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestDeleteLinkCascadesFavourites(t *testing.T) {
	f := newLinkFixture()
	scope := testScope()

	rec, err := f.svc.AddLink(context.Background(), scope, &services.AddLinkRequest{
		LinkData: "https://example.com/wiki",
		Title:    "Team wiki",
	})
	if err != nil {
		t.Fatalf("AddLink: %v", err)
	}
	f.favRepo.records["fav-1"] = &models.FavoriteRecord{
		ID: "fav-1", CompanyID: scope.CompanyID, EmployeeID: scope.EmployeeID, OriginalID: rec.ID,
	}

	if err := f.svc.DeleteLink(context.Background(), scope, rec.ID); err != nil {
		t.Fatalf("DeleteLink: %v", err)
	}
	if len(f.linkRepo.records) != 0 {
		t.Errorf("link still present")
	}
	if len(f.favRepo.records) != 0 {
		t.Errorf("favourite not cascaded")
	}
}

func TestDeleteLinkNotFound(t *testing.T) {
	f := newLinkFixture()

	err := f.svc.DeleteLink(context.Background(), testScope(), "link-9-zz")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}
