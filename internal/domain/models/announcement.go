package models

import "time"

// Announcement is a tenant-wide notice shown to every employee.
type Announcement struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementCollection is the wire-level collection name for announcements.
const AnnouncementCollection = "data_announcements"
