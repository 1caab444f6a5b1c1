package models

// DefaultTripStatus is assigned when a trip is created without a status.
// Trip status is deliberately free-form ("planning", "booked", "done", ...).
const DefaultTripStatus = "planning"

// Trip is the root travel plan. It owns reservations, budget categories,
// and spend entries; deleting a trip removes all of them.
type Trip struct {
	Base
	Title       string     `gorm:"size:120;not null" json:"title"`
	Destination *string    `gorm:"size:120" json:"destination"`
	StartDate   *DateOnly  `gorm:"type:date" json:"start_date"`
	EndDate     *DateOnly  `gorm:"type:date" json:"end_date"`
	Status      string     `gorm:"size:30;not null;default:planning" json:"status"`
	Tags        StringList `gorm:"type:jsonb;not null" json:"tags"`
}
