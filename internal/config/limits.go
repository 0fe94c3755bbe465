package config

import "time"

const (
	// MaxTitleLength is the maximum length for record titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxCategoryLength is the maximum length for category labels.
	MaxCategoryLength = 100

	// MaxCommentLength is the maximum length of a single comment.
	MaxCommentLength = 2000

	// MaxTagCount caps the number of tags on one record.
	MaxTagCount = 20

	// MaxUploadBytes caps one uploaded file at 100MB. Larger media should
	// go through a resumable pipeline, not a form post.
	MaxUploadBytes = 100 << 20

	// ThumbnailWidth is the pixel width of generated image thumbnails.
	ThumbnailWidth = 320

	// DownloadURLTTL is how long a signed asset link stays valid when the
	// bucket is private. Long enough for a browsing session, short enough
	// that a leaked link goes stale the same day.
	DownloadURLTTL = 15 * time.Minute
)
