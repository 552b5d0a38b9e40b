// Package domain defines the persistence models of the items service.
// Types here are mapped with GORM and form the data layer of the API.
package domain

import "time"

// Item is the sole domain resource: a named record with a generated
// integer id and server-managed timestamps.
//
// Fields:
//   - ID: surrogate primary key, assigned by the store on insert,
//     immutable thereafter and never reused.
//   - Name: human-readable item name; never blank for a stored row.
//   - CreatedAt: set once at creation, immutable.
//   - UpdatedAt: set at creation and refreshed by GORM on every
//     successful update, so UpdatedAt >= CreatedAt always holds.
//
// Items are hard-deleted; there is no soft-deletion marker.
type Item struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Item.
func (Item) TableName() string { return "items" }
