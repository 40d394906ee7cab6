// Package models contains shared data models used across the HubHR codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a hiring organization. Every job, submission, and
// API key belongs to an organization, and each organization owns one
// object-store bucket (named by its ID) holding all resume blobs.
type Organization struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Location  *string   `db:"location"   json:"location,omitempty"`
	Industry  *string   `db:"industry"   json:"industry,omitempty"`
	ImagePath *string   `db:"image_path" json:"image_path,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BucketName returns the object-store bucket holding this organization's
// resume files.
func (o *Organization) BucketName() string {
	return o.ID.String()
}
