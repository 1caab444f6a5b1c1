package models

import "time"

// SpendEntry is an actual recorded expense on a trip. It may point at the
// reservation and/or budget category it belongs to; deleting either clears
// the reference but keeps the entry (the ledger survives its annotations).
type SpendEntry struct {
	Base
	TripID uint `gorm:"not null;index:ix_spend_entries_trip_occurred_at,priority:1;index:ix_spend_entries_trip_currency,priority:1" json:"trip_id"`

	ReservationID *uint `gorm:"index" json:"reservation_id"`
	CategoryID    *uint `gorm:"index" json:"category_id"`

	Amount   float64 `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string  `gorm:"size:3;not null;default:USD;index:ix_spend_entries_trip_currency,priority:2" json:"currency"`

	OccurredAt time.Time `gorm:"not null;index:ix_spend_entries_trip_occurred_at,priority:2" json:"occurred_at"`

	Description *string `gorm:"size:200" json:"description"`
	Notes       *string `gorm:"type:text" json:"notes"`

	Trip        Trip            `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
	Reservation *Reservation    `gorm:"foreignKey:ReservationID;constraint:OnDelete:SET NULL" json:"-"`
	Category    *BudgetCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}
