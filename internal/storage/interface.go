package storage

import (
	"context"
	"time"
)

// StoredAsset describes a binary the asset store accepted.
type StoredAsset struct {
	URL          string // canonical public URL, empty when the bucket is private
	Key          string // object key, the handle for later deletion
	Format       string // file extension without the dot
	ResourceType string // coarse content class: image|audio|video|raw
	Bytes        int64
}

// AssetStore uploads and deletes binary content on a remote object host.
// Implementations must be safe for concurrent use.
type AssetStore interface {
	// Upload stores data under key and returns the asset metadata
	Upload(ctx context.Context, key, contentType string, data []byte) (*StoredAsset, error)

	// Delete removes an object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// DownloadURL returns a time-limited URL for private buckets
	DownloadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
