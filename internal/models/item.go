package models

import "time"

// ItemStatus is the lifecycle state of a found item listing.
type ItemStatus string

// Item statuses.
const (
	ItemActive   ItemStatus = "active"
	ItemClaimed  ItemStatus = "claimed"
	ItemArchived ItemStatus = "archived"
	ItemDeleted  ItemStatus = "deleted"
)

// Item represents a found item reported on the platform. Listing CRUD is
// owned by the item submission surface; this core only moves Status when a
// claim is approved or a moderator verifies or removes the listing.
type Item struct {
	Base
	Name        string     `gorm:"not null" json:"name"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	ReporterID  string     `gorm:"type:uuid;index" json:"reporter_id"`
	Status      ItemStatus `gorm:"type:varchar(16);default:'active';index" json:"status"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
}
