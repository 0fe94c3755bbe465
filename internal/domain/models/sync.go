package models

import (
	"encoding/json"
	"time"
)

// SyncOperation is the kind of mirrored write.
type SyncOperation string

const (
	SyncOpSet    SyncOperation = "set"
	SyncOpDelete SyncOperation = "delete"
)

// SyncState tracks the delivery lifecycle of an outbox task.
type SyncState string

const (
	SyncPending    SyncState = "pending"
	SyncProcessing SyncState = "processing" // claimed by a worker drain, delivery in flight
	SyncDelivered  SyncState = "delivered"
	SyncFailed     SyncState = "failed" // attempts exhausted, manual retry only
)

// SyncTask is one queued mirror replication unit. Tasks are enqueued in the
// same transaction as the primary write and drained by a background worker.
// Delivery is best-effort: a failed task never rolls back the primary write.
type SyncTask struct {
	ID             int64           `json:"id"`
	CompanyID      string          `json:"company_id"`
	CollectionName string          `json:"collection_name"`
	DocumentID     string          `json:"document_id"`
	Operation      SyncOperation   `json:"operation"`
	Payload        json.RawMessage `json:"data,omitempty"` // record snapshot for set, empty for delete
	State          SyncState       `json:"state"`
	Attempts       int             `json:"attempts"`
	LastError      string          `json:"last_error,omitempty"`
	NextAttemptAt  time.Time       `json:"next_attempt_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RetrySummary reports the outcome of a manual replay of failed tasks.
type RetrySummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// MirrorRecord is the admin-scoped duplicate of an employee record. It is
// keyed by the same document id as the primary copy but owned independently;
// nothing guarantees the two stay consistent.
type MirrorRecord struct {
	CompanyID      string          `json:"company_id"`
	CollectionName string          `json:"collection_name"`
	DocumentID     string          `json:"document_id"`
	Data           json.RawMessage `json:"data"`
	SyncedAt       time.Time       `json:"synced_at"`
}
