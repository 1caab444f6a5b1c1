package models

// BudgetCategory is a named planning bucket on a trip ("Lodging", "Food").
// Names are unique per trip; no normalization is applied to them.
type BudgetCategory struct {
	Base
	TripID uint `gorm:"not null;uniqueIndex:uq_budget_categories_trip_name,priority:1" json:"trip_id"`

	Name          string   `gorm:"size:80;not null;uniqueIndex:uq_budget_categories_trip_name,priority:2" json:"name"`
	PlannedAmount *float64 `gorm:"type:numeric(12,2)" json:"planned_amount"`
	Currency      string   `gorm:"size:3;not null;default:USD" json:"currency"`

	Trip Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
}
