package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// Application is a user's application to a resource. The unique index on
// (user_id, resource_id) is the race-safe guard against double applications.
type Application struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"not null;index;uniqueIndex:idx_user_application" json:"user_id"`
	User       User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ResourceID uint              `gorm:"not null;index;uniqueIndex:idx_user_application" json:"resource_id"`
	Resource   Resource          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resource"`
	Status     ApplicationStatus `gorm:"type:varchar(20);default:'PENDING';not null" json:"status"`
	Notes      string            `gorm:"type:text" json:"notes,omitempty"`
	Documents  []string          `gorm:"serializer:json" json:"documents"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}
