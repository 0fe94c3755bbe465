package mirror

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"staffhub/internal/domain/models"
)

func TestClientDeliverSendsTask(t *testing.T) {
	var gotKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/admin/mirror" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("X-Service-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	err := client.Deliver(context.Background(), &models.SyncTask{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpSet,
		Payload:        json.RawMessage(`{"id":"images-1-aa"}`),
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if gotKey != "secret-key" {
		t.Errorf("service key = %q", gotKey)
	}
	if gotBody["collection_name"] != "data_images" || gotBody["operation"] != "set" {
		t.Errorf("body = %#v", gotBody)
	}
	if _, ok := gotBody["data"]; !ok {
		t.Errorf("set delivery missing record snapshot")
	}
}

func TestClientDeliverOmitsDataForDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["data"]; ok {
			t.Errorf("delete delivery should carry no data field")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	err := client.Deliver(context.Background(), &models.SyncTask{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpDelete,
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
}

func TestClientDeliverNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mirror store down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	err := client.Deliver(context.Background(), &models.SyncTask{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpSet,
		Payload:        json.RawMessage(`{}`),
	})
	if err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestClientDeliverConnectionRefused(t *testing.T) {
	// Closed server: delivery must fail cleanly, not hang
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "secret-key")
	err := client.Deliver(context.Background(), &models.SyncTask{
		CompanyID:      "acme",
		CollectionName: "data_images",
		DocumentID:     "images-1-aa",
		Operation:      models.SyncOpDelete,
	})
	if err == nil {
		t.Fatal("expected error on refused connection")
	}
}
