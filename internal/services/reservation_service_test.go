package services

import (
	"testing"
	"time"

	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
	"github.com/joshuabarraza/Trip-API/internal/testutil"
)

func TestCreateReservation(t *testing.T) {
	t.Run("valid_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		reservation, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type:  "lodging",
			Title: "Hotel Mundial",
		})
		testutil.AssertNoError(t, err)

		if reservation.ID == 0 {
			t.Fatal("expected non-zero reservation ID")
		}
		if reservation.Status != models.ReservationStatusPlanned {
			t.Errorf("expected default status planned, got %s", reservation.Status)
		}
		if reservation.EstimatedCostCurrency != "USD" {
			t.Errorf("expected default currency USD, got %s", reservation.EstimatedCostCurrency)
		}
		if reservation.Meta == nil {
			t.Error("expected empty meta map, got nil")
		}
	})

	t.Run("type_and_status_normalized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		reservation, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type:   "  FLIGHT ",
			Status: "Booked",
			Title:  "LIS-JFK",
		})
		testutil.AssertNoError(t, err)

		if reservation.Type != models.ReservationTypeFlight {
			t.Errorf("expected type flight, got %s", reservation.Type)
		}
		if reservation.Status != models.ReservationStatusBooked {
			t.Errorf("expected status booked, got %s", reservation.Status)
		}
	})

	t.Run("currency_uppercased", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		amount := 120.0
		reservation, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type:                  "lodging",
			Title:                 "Pensao Central",
			EstimatedCostAmount:   &amount,
			EstimatedCostCurrency: "eur",
		})
		testutil.AssertNoError(t, err)

		if reservation.EstimatedCostCurrency != "EUR" {
			t.Errorf("expected currency EUR, got %s", reservation.EstimatedCostCurrency)
		}
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		_, err := svc.CreateReservation(trip.ID, ReservationCreateInput{Type: "submarine", Title: "Nope"})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		_, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type: "lodging", Status: "maybe", Title: "Nope",
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		start := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)
		_, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type: "lodging", Title: "Backwards", StartAt: &start, EndAt: &end,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		var count int64
		db.Model(&models.Reservation{}).Where("trip_id = ?", trip.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected rejected write to leave no rows, got %d", count)
		}
	})

	t.Run("negative_estimated_cost", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		amount := -5.0
		_, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type: "lodging", Title: "Nope", EstimatedCostAmount: &amount,
		})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("trip_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)

		_, err := svc.CreateReservation(99999, ReservationCreateInput{Type: "lodging", Title: "Orphan"})
		testutil.AssertAppError(t, err, "TRIP_NOT_FOUND")
	})
}

func TestListReservations(t *testing.T) {
	t.Run("itinerary_order_undated_last", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		undated := testutil.CreateTestReservation(t, db, trip.ID)

		later := time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)
		earlier := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

		second := testutil.CreateTestReservation(t, db, trip.ID)
		db.Model(second).Update("start_at", later)
		first := testutil.CreateTestReservation(t, db, trip.ID)
		db.Model(first).Update("start_at", earlier)

		reservations, err := svc.ListReservations(trip.ID, pagination.Query{}, ReservationFilter{})
		testutil.AssertNoError(t, err)

		if len(reservations) != 3 {
			t.Fatalf("expected 3 reservations, got %d", len(reservations))
		}
		if reservations[0].ID != first.ID {
			t.Errorf("expected earliest start first, got reservation %d", reservations[0].ID)
		}
		if reservations[1].ID != second.ID {
			t.Errorf("expected later start second, got reservation %d", reservations[1].ID)
		}
		if reservations[2].ID != undated.ID {
			t.Errorf("expected undated reservation last, got reservation %d", reservations[2].ID)
		}
	})

	t.Run("filter_by_type_and_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		testutil.CreateTestReservationOfType(t, db, trip.ID, models.ReservationTypeLodging)
		flight := testutil.CreateTestReservationOfType(t, db, trip.ID, models.ReservationTypeFlight)

		typeFilter := "FLIGHT"
		reservations, err := svc.ListReservations(trip.ID, pagination.Query{}, ReservationFilter{Type: &typeFilter})
		testutil.AssertNoError(t, err)

		if len(reservations) != 1 || reservations[0].ID != flight.ID {
			t.Errorf("expected only the flight reservation, got %d results", len(reservations))
		}
	})

	t.Run("range_filter_excludes_undated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		testutil.CreateTestReservation(t, db, trip.ID) // undated

		start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		dated := testutil.CreateTestReservation(t, db, trip.ID)
		db.Model(dated).Update("start_at", start)

		from := start.Add(-24 * time.Hour)
		reservations, err := svc.ListReservations(trip.ID, pagination.Query{}, ReservationFilter{From: &from})
		testutil.AssertNoError(t, err)

		if len(reservations) != 1 || reservations[0].ID != dated.ID {
			t.Errorf("expected only the dated reservation, got %d results", len(reservations))
		}
	})

	t.Run("invalid_filter_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		bad := "submarine"
		_, err := svc.ListReservations(trip.ID, pagination.Query{}, ReservationFilter{Type: &bad})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("trip_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)

		_, err := svc.ListReservations(99999, pagination.Query{}, ReservationFilter{})
		testutil.AssertAppError(t, err, "TRIP_NOT_FOUND")
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)
		created := testutil.CreateTestReservation(t, db, trip.ID)

		status := "canceled"
		updated, err := svc.UpdateReservation(created.ID, ReservationUpdateInput{Status: &status})
		testutil.AssertNoError(t, err)

		if updated.Status != models.ReservationStatusCanceled {
			t.Errorf("expected status canceled, got %s", updated.Status)
		}
		if updated.Title != created.Title {
			t.Errorf("expected title unchanged, got %s", updated.Title)
		}
	})

	t.Run("start_checked_against_stored_end", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(2 * time.Hour)
		created, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type: "activity", Title: "Tram tour", StartAt: &start, EndAt: &end,
		})
		testutil.AssertNoError(t, err)

		// Moving start past the stored end must fail even though end is not
		// part of the payload.
		badStart := end.Add(time.Hour)
		_, err = svc.UpdateReservation(created.ID, ReservationUpdateInput{StartAt: &badStart})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		var stored models.Reservation
		testutil.AssertNoError(t, db.First(&stored, created.ID).Error)
		if !stored.StartAt.Equal(start) {
			t.Errorf("expected start_at unchanged after rejected update, got %v", stored.StartAt)
		}
	})

	t.Run("moving_both_sides_together", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		end := start.Add(2 * time.Hour)
		created, err := svc.CreateReservation(trip.ID, ReservationCreateInput{
			Type: "activity", Title: "Tram tour", StartAt: &start, EndAt: &end,
		})
		testutil.AssertNoError(t, err)

		newStart := end.Add(24 * time.Hour)
		newEnd := newStart.Add(time.Hour)
		updated, err := svc.UpdateReservation(created.ID, ReservationUpdateInput{StartAt: &newStart, EndAt: &newEnd})
		testutil.AssertNoError(t, err)

		if !updated.StartAt.Equal(newStart) || !updated.EndAt.Equal(newEnd) {
			t.Errorf("expected window moved to [%v, %v], got [%v, %v]", newStart, newEnd, updated.StartAt, updated.EndAt)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)

		title := "Ghost"
		_, err := svc.UpdateReservation(99999, ReservationUpdateInput{Title: &title})
		testutil.AssertAppError(t, err, "RESERVATION_NOT_FOUND")
	})
}

func TestDeleteReservation(t *testing.T) {
	t.Run("nullifies_spend_entry_references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)
		reservation := testutil.CreateTestReservation(t, db, trip.ID)

		entry := testutil.CreateTestSpendEntry(t, db, trip.ID, 42.00)
		testutil.AssertNoError(t, db.Model(entry).Update("reservation_id", reservation.ID).Error)

		err := svc.DeleteReservation(reservation.ID)
		testutil.AssertNoError(t, err)

		var survived models.SpendEntry
		testutil.AssertNoError(t, db.First(&survived, entry.ID).Error)
		if survived.ReservationID != nil {
			t.Errorf("expected reservation_id cleared, got %v", *survived.ReservationID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)

		err := svc.DeleteReservation(99999)
		testutil.AssertAppError(t, err, "RESERVATION_NOT_FOUND")
	})
}

func TestSummarizeReservations(t *testing.T) {
	t.Run("empty_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		summary, err := svc.SummarizeReservations(trip.ID)
		testutil.AssertNoError(t, err)

		if len(summary.ByStatus) != 0 || len(summary.ByType) != 0 {
			t.Errorf("expected empty groups, got %v / %v", summary.ByStatus, summary.ByType)
		}
		if summary.EstimatedTotals == nil || len(summary.EstimatedTotals) != 0 {
			t.Errorf("expected empty totals slice, got %v", summary.EstimatedTotals)
		}
	})

	t.Run("groups_and_totals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)
		trip := testutil.CreateTestTrip(t, db)

		mk := func(resType, status string, amount *float64, currency string) {
			in := ReservationCreateInput{Type: resType, Status: status, Title: "r"}
			in.EstimatedCostAmount = amount
			in.EstimatedCostCurrency = currency
			_, err := svc.CreateReservation(trip.ID, in)
			testutil.AssertNoError(t, err)
		}
		a, b, c := 100.0, 50.0, 200.0
		mk("lodging", "booked", &a, "USD")
		mk("flight", "booked", &b, "USD")
		mk("flight", "planned", &c, "EUR")
		mk("activity", "planned", nil, "USD") // null amount ignored in totals

		summary, err := svc.SummarizeReservations(trip.ID)
		testutil.AssertNoError(t, err)

		if summary.ByStatus["booked"] != 2 || summary.ByStatus["planned"] != 2 {
			t.Errorf("unexpected status counts: %v", summary.ByStatus)
		}
		if summary.ByType["flight"] != 2 || summary.ByType["lodging"] != 1 || summary.ByType["activity"] != 1 {
			t.Errorf("unexpected type counts: %v", summary.ByType)
		}

		if len(summary.EstimatedTotals) != 2 {
			t.Fatalf("expected 2 currency buckets, got %d", len(summary.EstimatedTotals))
		}
		// Ordered by currency: EUR then USD.
		if summary.EstimatedTotals[0].Currency != "EUR" || summary.EstimatedTotals[0].Total != 200.0 {
			t.Errorf("unexpected EUR bucket: %+v", summary.EstimatedTotals[0])
		}
		if summary.EstimatedTotals[1].Currency != "USD" || summary.EstimatedTotals[1].Total != 150.0 {
			t.Errorf("unexpected USD bucket: %+v", summary.EstimatedTotals[1])
		}
	})

	t.Run("trip_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewReservationService(db)

		_, err := svc.SummarizeReservations(99999)
		testutil.AssertAppError(t, err, "TRIP_NOT_FOUND")
	})
}
