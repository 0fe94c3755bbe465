package models

import "time"

// FavoriteRecord references an original media or link record by id.
// The back-reference is not ownership: deleting the original cascades here,
// deleting the favourite never touches the original.
type FavoriteRecord struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	Title         string    `json:"title"`
	SubmitterName string    `json:"submitter_name"`
	Category      string    `json:"category"`
	AssetURL      string    `json:"asset_url,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	FileType      string    `json:"file_type,omitempty"`
	FileSize      int64     `json:"file_size,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`

	OriginalID         string `json:"original_id"`
	OriginalType       string `json:"original_type"`       // images|audios|videos|documents|links
	OriginalCollection string `json:"original_collection"` // data_<type>

	FavoriteDate time.Time `json:"favorite_date"`
	FavoritedBy  string    `json:"favorited_by"`
	Role         string    `json:"role"`
}

// FavoriteCollection is the wire-level collection name for favourites.
const FavoriteCollection = "data_favourites"
