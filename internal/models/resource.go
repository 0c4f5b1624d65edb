package models

import (
	"time"
)

type ResourceType string

const (
	ResourceTypeCourse      ResourceType = "course"
	ResourceTypeCertificate ResourceType = "certificate"
	ResourceTypeSoftware    ResourceType = "software"
	ResourceTypeGrant       ResourceType = "grant"
)

// ValidResourceType reports whether t is one of the recognized resource types.
func ValidResourceType(t string) bool {
	switch ResourceType(t) {
	case ResourceTypeCourse, ResourceTypeCertificate, ResourceTypeSoftware, ResourceTypeGrant:
		return true
	}
	return false
}

type Resource struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Type        ResourceType `gorm:"type:varchar(20);not null;index" json:"type"`
	Category    string       `gorm:"not null;index" json:"category"`
	Provider    string       `json:"provider"`
	URL         string       `json:"url"`
	IsFree      bool         `gorm:"default:false;index" json:"isFree"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Location    string       `json:"location,omitempty"`
	Duration    string       `json:"duration,omitempty"`
	Tags        []string     `gorm:"serializer:json" json:"tags"`
	Rating      *float64     `json:"rating,omitempty"`
	ViewCount   int          `gorm:"default:0" json:"viewCount"`
	SaveCount   int          `gorm:"default:0" json:"saveCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	// Derived per requesting user, never persisted
	Saved             bool   `gorm:"-" json:"saved"`
	Applied           bool   `gorm:"-" json:"applied,omitempty"`
	ApplicationStatus string `gorm:"-" json:"applicationStatus,omitempty"`
}

// SavedResource is the per-user saved relation, one row per (user, resource).
type SavedResource struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_resource" json:"user_id"`
	ResourceID uint      `gorm:"not null;index;uniqueIndex:idx_user_resource" json:"resource_id"`
	Resource   Resource  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resource"`
	CreatedAt  time.Time `json:"created_at"`
}
