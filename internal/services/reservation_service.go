package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
)

// reservationService handles reservation-related business logic.
type reservationService struct {
	db *gorm.DB
}

// NewReservationService creates a new ReservationServicer.
func NewReservationService(db *gorm.DB) ReservationServicer {
	return &reservationService{db: db}
}

// CreateReservation validates and creates a reservation under a trip.
// Status defaults to planned and currency to USD when omitted.
func (s *reservationService) CreateReservation(tripID uint, in ReservationCreateInput) (*models.Reservation, error) {
	resType, err := normalizeReservationType(in.Type)
	if err != nil {
		return nil, err
	}

	status := models.ReservationStatusPlanned
	if in.Status != "" {
		if status, err = normalizeReservationStatus(in.Status); err != nil {
			return nil, err
		}
	}

	currency := models.DefaultCurrency
	if in.EstimatedCostCurrency != "" {
		if currency, err = normalizeCurrency(in.EstimatedCostCurrency, "estimated_cost_currency"); err != nil {
			return nil, err
		}
	}

	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "title is required")
	}
	if err := checkNonNegative(in.EstimatedCostAmount, "estimated_cost_amount"); err != nil {
		return nil, err
	}
	if err := checkDateOrder(in.StartAt, in.EndAt); err != nil {
		return nil, err
	}

	meta := in.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}

	reservation := &models.Reservation{
		TripID:                tripID,
		Type:                  resType,
		Status:                status,
		Title:                 in.Title,
		Provider:              in.Provider,
		ConfirmationCode:      in.ConfirmationCode,
		StartAt:               in.StartAt,
		EndAt:                 in.EndAt,
		Timezone:              in.Timezone,
		LocationText:          in.LocationText,
		Notes:                 in.Notes,
		EstimatedCostAmount:   in.EstimatedCostAmount,
		EstimatedCostCurrency: currency,
		Meta:                  meta,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireTrip(tx, tripID); err != nil {
			return err
		}
		if err := tx.Create(reservation).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// ListReservations returns a trip's reservations, itinerary first: start_at
// ascending with undated items last, then newest created, then highest id.
// Filters on type/status are normalized the same way as on writes.
func (s *reservationService) ListReservations(tripID uint, page pagination.Query, filter ReservationFilter) ([]models.Reservation, error) {
	page.Defaults(DefaultListLimit)

	if err := requireTrip(s.db, tripID); err != nil {
		return nil, err
	}

	q := s.db.Where("trip_id = ?", tripID)

	if filter.Type != nil {
		resType, err := normalizeReservationType(*filter.Type)
		if err != nil {
			return nil, err
		}
		q = q.Where("type = ?", resType)
	}
	if filter.Status != nil {
		status, err := normalizeReservationStatus(*filter.Status)
		if err != nil {
			return nil, err
		}
		q = q.Where("status = ?", status)
	}
	// Explicit range bounds exclude undated reservations: NULL start_at
	// never satisfies the comparison.
	if filter.From != nil {
		q = q.Where("start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("start_at <= ?", *filter.To)
	}

	var reservations []models.Reservation
	err := q.Order("start_at ASC NULLS LAST").
		Order("created_at DESC").
		Order("id DESC").
		Scopes(pagination.Scope(page)).
		Find(&reservations).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reservations, nil
}

// GetReservationByID returns a reservation by ID.
func (s *reservationService) GetReservationByID(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReservationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &reservation, nil
}

// UpdateReservation applies a partial update. Validation runs against the
// effective record (stored fields overlaid with the present updates), so
// changing only start_at still checks it against the stored end_at.
func (s *reservationService) UpdateReservation(reservationID uint, in ReservationUpdateInput) (*models.Reservation, error) {
	var reservation *models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Reservation
		if err := tx.First(&existing, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReservationNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})

		if in.Type != nil {
			resType, err := normalizeReservationType(*in.Type)
			if err != nil {
				return err
			}
			updates["type"] = resType
		}
		if in.Status != nil {
			status, err := normalizeReservationStatus(*in.Status)
			if err != nil {
				return err
			}
			updates["status"] = status
		}
		if in.Title != nil {
			if *in.Title == "" {
				return apperrors.WithMessage(apperrors.ErrValidation, "title must not be empty")
			}
			updates["title"] = *in.Title
		}
		if in.Provider != nil {
			updates["provider"] = *in.Provider
		}
		if in.ConfirmationCode != nil {
			updates["confirmation_code"] = *in.ConfirmationCode
		}
		if in.Timezone != nil {
			updates["timezone"] = *in.Timezone
		}
		if in.LocationText != nil {
			updates["location_text"] = *in.LocationText
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}
		if in.EstimatedCostAmount != nil {
			if err := checkNonNegative(in.EstimatedCostAmount, "estimated_cost_amount"); err != nil {
				return err
			}
			updates["estimated_cost_amount"] = *in.EstimatedCostAmount
		}
		if in.EstimatedCostCurrency != nil {
			currency, err := normalizeCurrency(*in.EstimatedCostCurrency, "estimated_cost_currency")
			if err != nil {
				return err
			}
			updates["estimated_cost_currency"] = currency
		}
		if in.Meta != nil {
			updates["meta"] = models.JSONMap(in.Meta)
		}

		// Effective time window: new value if supplied, stored value otherwise.
		effectiveStart := existing.StartAt
		if in.StartAt != nil {
			effectiveStart = in.StartAt
			updates["start_at"] = *in.StartAt
		}
		effectiveEnd := existing.EndAt
		if in.EndAt != nil {
			effectiveEnd = in.EndAt
			updates["end_at"] = *in.EndAt
		}
		if err := checkDateOrder(effectiveStart, effectiveEnd); err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return translateWriteError(err)
			}
		}

		reservation = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// DeleteReservation removes a reservation. Spend entries that pointed at it
// survive with the reference cleared, in the same transaction.
func (s *reservationService) DeleteReservation(reservationID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReservationNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		err := tx.Model(&models.SpendEntry{}).
			Where("reservation_id = ?", reservationID).
			Update("reservation_id", nil).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&reservation).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SummarizeReservations aggregates a trip's reservations: counts by status,
// counts by type, and estimated cost totals per currency (null amounts are
// ignored). Group keys are ordered so output is deterministic.
func (s *reservationService) SummarizeReservations(tripID uint) (*ReservationSummary, error) {
	if err := requireTrip(s.db, tripID); err != nil {
		return nil, err
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	err := s.db.Model(&models.Reservation{}).
		Select("status, COUNT(id) AS count").
		Where("trip_id = ?", tripID).
		Group("status").
		Order("status ASC").
		Scan(&statusRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var typeRows []struct {
		Type  string
		Count int64
	}
	err = s.db.Model(&models.Reservation{}).
		Select("type, COUNT(id) AS count").
		Where("trip_id = ?", tripID).
		Group("type").
		Order("type ASC").
		Scan(&typeRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalRows []CurrencyTotal
	err = s.db.Model(&models.Reservation{}).
		Select("estimated_cost_currency AS currency, COALESCE(SUM(estimated_cost_amount), 0) AS total").
		Where("trip_id = ? AND estimated_cost_amount IS NOT NULL", tripID).
		Group("estimated_cost_currency").
		Order("estimated_cost_currency ASC").
		Scan(&totalRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &ReservationSummary{
		TripID:          tripID,
		ByStatus:        make(map[string]int64, len(statusRows)),
		ByType:          make(map[string]int64, len(typeRows)),
		EstimatedTotals: totalRows,
	}
	if summary.EstimatedTotals == nil {
		summary.EstimatedTotals = []CurrencyTotal{}
	}
	for _, row := range statusRows {
		summary.ByStatus[row.Status] = row.Count
	}
	for _, row := range typeRows {
		summary.ByType[row.Type] = row.Count
	}
	return summary, nil
}
