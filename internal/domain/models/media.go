package models

import "time"

// MediaKind identifies which per-employee sub-collection a record belongs to.
type MediaKind string

const (
	KindImages    MediaKind = "images"
	KindAudios    MediaKind = "audios"
	KindVideos    MediaKind = "videos"
	KindDocuments MediaKind = "documents"
)

// ValidKind reports whether k is one of the four media kinds.
func ValidKind(k MediaKind) bool {
	switch k {
	case KindImages, KindAudios, KindVideos, KindDocuments:
		return true
	}
	return false
}

// CollectionName returns the wire-level collection name for a kind ("data_images", ...).
func (k MediaKind) CollectionName() string {
	return "data_" + string(k)
}

// HasComments reports whether records of this kind carry a comment thread.
// Document records group into document sets instead.
func (k MediaKind) HasComments() bool {
	return k != KindDocuments
}

// Scope identifies the (tenant, employee) subtree a record lives under.
// Ownership is structural: every record is keyed by its scope, not a
// separate foreign key.
type Scope struct {
	CompanyID  string
	EmployeeID string
}

// MediaRecord is a stored media or document entry for one employee.
type MediaRecord struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	Kind          MediaKind `json:"kind"`
	Title         string    `json:"title"`
	SubmitterName string    `json:"submitter_name"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Notes         string    `json:"notes"`
	TextData      string    `json:"text_data,omitempty"`

	AssetURL          string `json:"asset_url"`
	AssetKey          string `json:"asset_key"`
	AssetFormat       string `json:"asset_format"`
	AssetResourceType string `json:"asset_resource_type"`
	AssetBytes        int64  `json:"asset_bytes"`
	ThumbnailURL      string `json:"thumbnail_url,omitempty"`

	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`

	UploadedAt time.Time `json:"uploaded_at"`
	Role       string    `json:"role"`

	// Comments is non-nil (possibly empty) for images/audios/videos and
	// nil for documents.
	Comments []string `json:"comments"`

	// Document grouping fields, set only for the documents kind.
	DocumentID      *string `json:"document_id,omitempty"`
	DocumentGroupID *string `json:"document_group_id,omitempty"`
}

// MediaCounts holds one-shot record counts across all five sub-collections.
type MediaCounts struct {
	Images    int `json:"images"`
	Audios    int `json:"audios"`
	Videos    int `json:"videos"`
	Documents int `json:"documents"`
	Links     int `json:"links"`
}
