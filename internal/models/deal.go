package models

import (
	"time"
)

type Deal struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Company         string     `gorm:"not null" json:"company"`
	Category        string     `gorm:"not null;index" json:"category"`
	Discount        string     `json:"discount"` // e.g. "30%"
	OriginalPrice   *float64   `json:"originalPrice,omitempty"`
	DiscountedPrice *float64   `json:"discountedPrice,omitempty"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Address         string     `json:"address,omitempty"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"`
	Requirements    []string   `gorm:"serializer:json" json:"requirements"`
	Verified        bool       `gorm:"default:false" json:"verified"`
	SaveCount       int        `gorm:"default:0" json:"saveCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	// Derived per requesting user / user location, never persisted
	Saved    bool     `gorm:"-" json:"saved"`
	Distance *float64 `gorm:"-" json:"distance,omitempty"`
}

// HasLocation reports whether the deal carries geographic coordinates.
func (d *Deal) HasLocation() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// SavedDeal is the per-user saved relation, one row per (user, deal).
type SavedDeal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_deal" json:"user_id"`
	DealID    uint      `gorm:"not null;index;uniqueIndex:idx_user_deal" json:"deal_id"`
	Deal      Deal      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"deal"`
	CreatedAt time.Time `json:"created_at"`
}
