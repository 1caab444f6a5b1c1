package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joshuabarraza/Trip-API/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTrip creates a trip with a unique title and default status.
func CreateTestTrip(t *testing.T, db *gorm.DB) *models.Trip {
	t.Helper()

	trip := &models.Trip{
		Title:  fmt.Sprintf("Test Trip %d", nextID()),
		Status: models.DefaultTripStatus,
		Tags:   models.StringList{},
	}
	if err := db.Create(trip).Error; err != nil {
		t.Fatalf("failed to create test trip: %v", err)
	}
	return trip
}

// CreateTestReservation creates a planned lodging reservation on the trip.
func CreateTestReservation(t *testing.T, db *gorm.DB, tripID uint) *models.Reservation {
	t.Helper()
	return CreateTestReservationOfType(t, db, tripID, models.ReservationTypeLodging)
}

// CreateTestReservationOfType creates a planned reservation of the given type.
func CreateTestReservationOfType(t *testing.T, db *gorm.DB, tripID uint, resType models.ReservationType) *models.Reservation {
	t.Helper()

	reservation := &models.Reservation{
		TripID:                tripID,
		Type:                  resType,
		Status:                models.ReservationStatusPlanned,
		Title:                 fmt.Sprintf("Test Reservation %d", nextID()),
		EstimatedCostCurrency: models.DefaultCurrency,
		Meta:                  models.JSONMap{},
	}
	if err := db.Create(reservation).Error; err != nil {
		t.Fatalf("failed to create test reservation: %v", err)
	}
	return reservation
}

// CreateTestBudgetCategory creates a budget category with a unique name.
func CreateTestBudgetCategory(t *testing.T, db *gorm.DB, tripID uint) *models.BudgetCategory {
	t.Helper()
	return CreateTestBudgetCategoryWithName(t, db, tripID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestBudgetCategoryWithName creates a budget category with the given name.
func CreateTestBudgetCategoryWithName(t *testing.T, db *gorm.DB, tripID uint, name string) *models.BudgetCategory {
	t.Helper()

	category := &models.BudgetCategory{
		TripID:   tripID,
		Name:     name,
		Currency: models.DefaultCurrency,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test budget category: %v", err)
	}
	return category
}

// CreateTestSpendEntry creates a spend entry with the given amount, not tied
// to any reservation or category.
func CreateTestSpendEntry(t *testing.T, db *gorm.DB, tripID uint, amount float64) *models.SpendEntry {
	t.Helper()

	entry := &models.SpendEntry{
		TripID:     tripID,
		Amount:     amount,
		Currency:   models.DefaultCurrency,
		OccurredAt: time.Now().UTC(),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test spend entry: %v", err)
	}
	return entry
}
