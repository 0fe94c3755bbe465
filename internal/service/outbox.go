package service

import (
	"context"
	"encoding/json"
	"fmt"

	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
)

// enqueueSet queues a mirror upsert carrying a full record snapshot.
// Call inside the primary write's transaction so a committed record always
// has a matching task.
func enqueueSet(ctx context.Context, outbox repositories.OutboxRepository, companyID, collectionName, documentID string, record interface{}) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal sync payload: %w", err)
	}

	return outbox.Enqueue(ctx, &models.SyncTask{
		CompanyID:      companyID,
		CollectionName: collectionName,
		DocumentID:     documentID,
		Operation:      models.SyncOpSet,
		Payload:        payload,
	})
}

// enqueueDelete queues a mirror delete for one document
func enqueueDelete(ctx context.Context, outbox repositories.OutboxRepository, companyID, collectionName, documentID string) error {
	return outbox.Enqueue(ctx, &models.SyncTask{
		CompanyID:      companyID,
		CollectionName: collectionName,
		DocumentID:     documentID,
		Operation:      models.SyncOpDelete,
	})
}
