package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newRecordID builds a generated document id of the shape
// <prefix>-<millis>-<uuid>. The prefix is the media kind ("images-..."),
// "link", "favourite" or "announcement"; the timestamp keeps ids roughly
// sortable by creation time.
func newRecordID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString())
}
