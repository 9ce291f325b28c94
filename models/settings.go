package models

import "time"

// SiteSetting is a key/value row for storefront configuration
// (site name, support email, maintenance banner, ...).
type SiteSetting struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"unique;not null" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
