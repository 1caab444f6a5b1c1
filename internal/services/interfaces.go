package services

import (
	"encoding/json"
	"time"

	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
)

// Default list limits. Budget categories use the larger page because a trip
// rarely has more than a handful of them.
const (
	DefaultListLimit         = 20
	DefaultCategoryListLimit = 50
)

// OptionalRef distinguishes "field omitted" from "explicit null" for nullable
// reference fields in partial updates: {"category_id": null} clears the
// relation, while leaving the key out leaves it untouched.
type OptionalRef struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON marks the field as present and records either the id or an
// explicit null.
func (r *OptionalRef) UnmarshalJSON(data []byte) error {
	r.Set = true
	if string(data) == "null" {
		r.Value = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	r.Value = &id
	return nil
}

// TripCreateInput holds the fields for creating a trip.
type TripCreateInput struct {
	Title       string
	Destination *string
	StartDate   *models.DateOnly
	EndDate     *models.DateOnly
	Status      string
	Tags        []string
}

// TripUpdateInput holds the partial-update fields for a trip. Nil means the
// field was omitted and the stored value is kept.
type TripUpdateInput struct {
	Title       *string
	Destination *string
	StartDate   *models.DateOnly
	EndDate     *models.DateOnly
	Status      *string
	Tags        *[]string
}

// TripServicer defines the contract for trip-related business logic.
type TripServicer interface {
	CreateTrip(in TripCreateInput) (*models.Trip, error)
	ListTrips(page pagination.Query) ([]models.Trip, error)
	GetTripByID(tripID uint) (*models.Trip, error)
	UpdateTrip(tripID uint, in TripUpdateInput) (*models.Trip, error)
	DeleteTrip(tripID uint) error
}

// ReservationCreateInput holds the fields for creating a reservation.
// Type/status/currency arrive raw and are normalized by the service.
type ReservationCreateInput struct {
	Type                  string
	Status                string
	Title                 string
	Provider              *string
	ConfirmationCode      *string
	StartAt               *time.Time
	EndAt                 *time.Time
	Timezone              *string
	LocationText          *string
	Notes                 *string
	EstimatedCostAmount   *float64
	EstimatedCostCurrency string
	Meta                  map[string]interface{}
}

// ReservationUpdateInput holds the partial-update fields for a reservation.
// Nil means the field was omitted.
type ReservationUpdateInput struct {
	Type                  *string
	Status                *string
	Title                 *string
	Provider              *string
	ConfirmationCode      *string
	StartAt               *time.Time
	EndAt                 *time.Time
	Timezone              *string
	LocationText          *string
	Notes                 *string
	EstimatedCostAmount   *float64
	EstimatedCostCurrency *string
	Meta                  map[string]interface{}
}

// ReservationFilter holds optional filter parameters for listing reservations.
type ReservationFilter struct {
	Type   *string
	Status *string
	From   *time.Time
	To     *time.Time
}

// CurrencyTotal is one per-currency bucket of an aggregation. Totals are
// never summed across currencies.
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
}

// ReservationSummary aggregates a trip's reservations by status, type, and
// estimated cost per currency. Groups with no members are absent.
type ReservationSummary struct {
	TripID          uint             `json:"trip_id"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByType          map[string]int64 `json:"by_type"`
	EstimatedTotals []CurrencyTotal  `json:"estimated_totals"`
}

// ReservationServicer defines the contract for reservation-related business logic.
type ReservationServicer interface {
	CreateReservation(tripID uint, in ReservationCreateInput) (*models.Reservation, error)
	ListReservations(tripID uint, page pagination.Query, filter ReservationFilter) ([]models.Reservation, error)
	GetReservationByID(reservationID uint) (*models.Reservation, error)
	UpdateReservation(reservationID uint, in ReservationUpdateInput) (*models.Reservation, error)
	DeleteReservation(reservationID uint) error
	SummarizeReservations(tripID uint) (*ReservationSummary, error)
}

// CategoryUpdateInput holds the partial-update fields for a budget category.
type CategoryUpdateInput struct {
	Name          *string
	PlannedAmount *float64
	Currency      *string
}

// BudgetCategoryServicer defines the contract for budget-category business logic.
type BudgetCategoryServicer interface {
	CreateCategory(tripID uint, name string, plannedAmount *float64, currency string) (*models.BudgetCategory, error)
	ListCategories(tripID uint, page pagination.Query) ([]models.BudgetCategory, error)
	GetCategoryByID(categoryID uint) (*models.BudgetCategory, error)
	UpdateCategory(categoryID uint, in CategoryUpdateInput) (*models.BudgetCategory, error)
	DeleteCategory(categoryID uint) error
}

// SpendEntryCreateInput holds the fields for creating a spend entry.
type SpendEntryCreateInput struct {
	ReservationID *uint
	CategoryID    *uint
	Amount        float64
	Currency      string
	OccurredAt    time.Time
	Description   *string
	Notes         *string
}

// SpendEntryUpdateInput holds the partial-update fields for a spend entry.
// ReservationID and CategoryID support explicit null to clear the relation.
type SpendEntryUpdateInput struct {
	ReservationID OptionalRef
	CategoryID    OptionalRef
	Amount        *float64
	Currency      *string
	OccurredAt    *time.Time
	Description   *string
	Notes         *string
}

// SpendEntryFilter holds optional filter parameters for listing spend entries.
type SpendEntryFilter struct {
	Currency      *string
	ReservationID *uint
	CategoryID    *uint
	From          *time.Time
	To            *time.Time
}

// SpendSummary aggregates a trip's spend ledger: entry count plus per-currency totals.
type SpendSummary struct {
	TripID           uint            `json:"trip_id"`
	TotalEntries     int64           `json:"total_entries"`
	TotalsByCurrency []CurrencyTotal `json:"totals_by_currency"`
}

// SpendEntryServicer defines the contract for spend-entry business logic.
type SpendEntryServicer interface {
	CreateSpendEntry(tripID uint, in SpendEntryCreateInput) (*models.SpendEntry, error)
	ListSpendEntries(tripID uint, page pagination.Query, filter SpendEntryFilter) ([]models.SpendEntry, error)
	GetSpendEntryByID(spendEntryID uint) (*models.SpendEntry, error)
	UpdateSpendEntry(spendEntryID uint, in SpendEntryUpdateInput) (*models.SpendEntry, error)
	DeleteSpendEntry(spendEntryID uint) error
	SummarizeSpend(tripID uint) (*SpendSummary, error)
}
