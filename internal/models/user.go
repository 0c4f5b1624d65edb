package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"` // Hash
	Name         string    `gorm:"not null" json:"name"`
	University   string    `json:"university,omitempty"`
	FieldOfStudy string    `json:"fieldOfStudy,omitempty"`
	YearOfStudy  int       `json:"yearOfStudy,omitempty"`
	StudentID    string    `json:"studentId,omitempty"`
	IsStudent    bool      `gorm:"default:true" json:"isStudent"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Preferences
	Notifications       bool     `gorm:"default:true" json:"notifications"`
	LocationServices    bool     `gorm:"default:false" json:"locationServices"`
	PreferredCategories []string `gorm:"serializer:json" json:"preferredCategories"`
}
