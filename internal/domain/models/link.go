package models

import "time"

// LinkRecord is a stored external link entry for one employee.
// Same lifecycle shape as MediaRecord minus the asset fields.
type LinkRecord struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	SubmitterName string    `json:"submitter_name"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Role          string    `json:"role"`
	Comments      []string  `json:"comments"`
}

// LinkCollection is the wire-level collection name for link records.
const LinkCollection = "data_links"
