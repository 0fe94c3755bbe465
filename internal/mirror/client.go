package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"staffhub/internal/domain/models"
)

// applyRequest is the wire shape of one replication task delivery.
type applyRequest struct {
	CompanyID      string               `json:"company_id"`
	CollectionName string               `json:"collection_name"`
	DocumentID     string               `json:"document_id"`
	Operation      models.SyncOperation `json:"operation"`
	Data           json.RawMessage      `json:"data,omitempty"`
}

// Client delivers outbox tasks to the admin mirror apply endpoint.
// It authenticates with a service key rather than an employee token.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a mirror delivery client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Deliver posts one task to the apply endpoint. A non-2xx status is an
// error; the mirror treats deletes of absent documents as success, so a
// replayed delete never fails here for that reason.
func (c *Client) Deliver(ctx context.Context, task *models.SyncTask) error {
	body, err := json.Marshal(applyRequest{
		CompanyID:      task.CompanyID,
		CollectionName: task.CollectionName,
		DocumentID:     task.DocumentID,
		Operation:      task.Operation,
		Data:           task.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal mirror request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/mirror", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Key", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver mirror task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read a little of the body for the task's last_error field.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mirror apply returned %d: %s", resp.StatusCode, snippet)
	}

	return nil
}
