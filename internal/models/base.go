package models

import "time"

// Base contains common columns for all tables. Identifiers are
// auto-incrementing integers assigned by the database and never reused.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
