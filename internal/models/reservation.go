package models

import (
	"sort"
	"strings"
	"time"
)

// ReservationType classifies an itinerary item.
type ReservationType string

const (
	ReservationTypeLodging    ReservationType = "lodging"
	ReservationTypeFlight     ReservationType = "flight"
	ReservationTypeCar        ReservationType = "car"
	ReservationTypeTrain      ReservationType = "train"
	ReservationTypeActivity   ReservationType = "activity"
	ReservationTypeRestaurant ReservationType = "restaurant"
	ReservationTypeOther      ReservationType = "other"
)

// ReservationStatus tracks the booking lifecycle of a reservation.
type ReservationStatus string

const (
	ReservationStatusPlanned  ReservationStatus = "planned"
	ReservationStatusBooked   ReservationStatus = "booked"
	ReservationStatusCanceled ReservationStatus = "canceled"
)

var reservationTypes = map[ReservationType]bool{
	ReservationTypeLodging:    true,
	ReservationTypeFlight:     true,
	ReservationTypeCar:        true,
	ReservationTypeTrain:      true,
	ReservationTypeActivity:   true,
	ReservationTypeRestaurant: true,
	ReservationTypeOther:      true,
}

var reservationStatuses = map[ReservationStatus]bool{
	ReservationStatusPlanned:  true,
	ReservationStatusBooked:   true,
	ReservationStatusCanceled: true,
}

// NormalizeReservationType trims and lowercases the input, then checks it
// against the allowed set. ok is false when the value is not a valid type.
func NormalizeReservationType(s string) (t ReservationType, ok bool) {
	t = ReservationType(strings.ToLower(strings.TrimSpace(s)))
	return t, reservationTypes[t]
}

// NormalizeReservationStatus trims and lowercases the input, then checks it
// against the allowed set. ok is false when the value is not a valid status.
func NormalizeReservationStatus(s string) (st ReservationStatus, ok bool) {
	st = ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	return st, reservationStatuses[st]
}

// ReservationTypeValues returns the allowed type values, sorted, for error messages.
func ReservationTypeValues() []string {
	vals := make([]string, 0, len(reservationTypes))
	for t := range reservationTypes {
		vals = append(vals, string(t))
	}
	sort.Strings(vals)
	return vals
}

// ReservationStatusValues returns the allowed status values, sorted, for error messages.
func ReservationStatusValues() []string {
	vals := make([]string, 0, len(reservationStatuses))
	for s := range reservationStatuses {
		vals = append(vals, string(s))
	}
	sort.Strings(vals)
	return vals
}

// Reservation is a planned or booked itinerary item belonging to one trip.
// The optional start/end instants carry an invariant: when both are present,
// end_at >= start_at.
type Reservation struct {
	Base
	TripID uint `gorm:"not null;index:ix_reservations_trip_start_at,priority:1;index:ix_reservations_trip_type,priority:1;index:ix_reservations_trip_status,priority:1" json:"trip_id"`

	Type   ReservationType   `gorm:"size:32;not null;index:ix_reservations_trip_type,priority:2" json:"type"`
	Status ReservationStatus `gorm:"size:16;not null;default:planned;index:ix_reservations_trip_status,priority:2" json:"status"`

	Title            string  `gorm:"size:200;not null" json:"title"`
	Provider         *string `gorm:"size:120" json:"provider"`
	ConfirmationCode *string `gorm:"size:80" json:"confirmation_code"`

	StartAt  *time.Time `gorm:"index:ix_reservations_trip_start_at,priority:2" json:"start_at"`
	EndAt    *time.Time `json:"end_at"`
	Timezone *string    `gorm:"size:64" json:"timezone"`

	LocationText *string `gorm:"size:200" json:"location_text"`
	Notes        *string `gorm:"type:text" json:"notes"`

	// Planning money; actual spend is recorded separately as SpendEntry.
	EstimatedCostAmount   *float64 `gorm:"type:numeric(12,2)" json:"estimated_cost_amount"`
	EstimatedCostCurrency string   `gorm:"size:3;not null;default:USD" json:"estimated_cost_currency"`

	// Flexible structured details per reservation type.
	Meta JSONMap `gorm:"type:jsonb;not null" json:"meta"`

	Trip Trip `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
}
