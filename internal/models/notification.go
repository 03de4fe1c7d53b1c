package models

import "time"

// Notification represents an in-app notification for a user.
type Notification struct {
	Base
	UserID         string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string     `gorm:"not null" json:"title"`
	Message        string     `gorm:"type:text" json:"message"`
	RelatedClaimID *string    `gorm:"type:uuid" json:"related_claim_id,omitempty"`
	RelatedItemID  *string    `gorm:"type:uuid" json:"related_item_id,omitempty"`
	IsRead         bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}
