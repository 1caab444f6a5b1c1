package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
)

// spendEntryService handles spend-entry business logic.
type spendEntryService struct {
	db *gorm.DB
}

// NewSpendEntryService creates a new SpendEntryServicer.
func NewSpendEntryService(db *gorm.DB) SpendEntryServicer {
	return &spendEntryService{db: db}
}

// requireReservationInTrip checks that the reservation exists, then that it
// belongs to the given trip. The two failures are distinct: a missing
// reservation is a not-found, a reservation on another trip is a conflict.
func requireReservationInTrip(tx *gorm.DB, reservationID, tripID uint) error {
	var reservation models.Reservation
	if err := tx.Select("id", "trip_id").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReservationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if reservation.TripID != tripID {
		return apperrors.ErrReservationTripMismatch
	}
	return nil
}

// requireCategoryInTrip is the budget-category counterpart of
// requireReservationInTrip.
func requireCategoryInTrip(tx *gorm.DB, categoryID, tripID uint) error {
	var category models.BudgetCategory
	if err := tx.Select("id", "trip_id").First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if category.TripID != tripID {
		return apperrors.ErrCategoryTripMismatch
	}
	return nil
}

// CreateSpendEntry validates and creates a spend entry under a trip. The
// optional reservation and category references must exist and belong to the
// same trip; all checks run before the row is written.
func (s *spendEntryService) CreateSpendEntry(tripID uint, in SpendEntryCreateInput) (*models.SpendEntry, error) {
	if in.Amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "amount must be >= 0")
	}
	if in.OccurredAt.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "occurred_at is required")
	}

	currency := models.DefaultCurrency
	if in.Currency != "" {
		var err error
		if currency, err = normalizeCurrency(in.Currency, "currency"); err != nil {
			return nil, err
		}
	}

	entry := &models.SpendEntry{
		TripID:        tripID,
		ReservationID: in.ReservationID,
		CategoryID:    in.CategoryID,
		Amount:        in.Amount,
		Currency:      currency,
		OccurredAt:    in.OccurredAt,
		Description:   in.Description,
		Notes:         in.Notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireTrip(tx, tripID); err != nil {
			return err
		}
		if in.ReservationID != nil {
			if err := requireReservationInTrip(tx, *in.ReservationID, tripID); err != nil {
				return err
			}
		}
		if in.CategoryID != nil {
			if err := requireCategoryInTrip(tx, *in.CategoryID, tripID); err != nil {
				return err
			}
		}
		if err := tx.Create(entry).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListSpendEntries returns a trip's ledger, newest first (occurred_at
// descending, then id descending).
func (s *spendEntryService) ListSpendEntries(tripID uint, page pagination.Query, filter SpendEntryFilter) ([]models.SpendEntry, error) {
	page.Defaults(DefaultListLimit)

	if err := requireTrip(s.db, tripID); err != nil {
		return nil, err
	}

	q := s.db.Where("trip_id = ?", tripID)

	if filter.Currency != nil {
		currency, err := normalizeCurrency(*filter.Currency, "currency")
		if err != nil {
			return nil, err
		}
		q = q.Where("currency = ?", currency)
	}
	if filter.ReservationID != nil {
		q = q.Where("reservation_id = ?", *filter.ReservationID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.From != nil {
		q = q.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("occurred_at <= ?", *filter.To)
	}

	var entries []models.SpendEntry
	err := q.Order("occurred_at DESC").
		Order("id DESC").
		Scopes(pagination.Scope(page)).
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entries, nil
}

// GetSpendEntryByID returns a spend entry by ID.
func (s *spendEntryService) GetSpendEntryByID(spendEntryID uint) (*models.SpendEntry, error) {
	var entry models.SpendEntry
	if err := s.db.First(&entry, spendEntryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSpendEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entry, nil
}

// UpdateSpendEntry applies a partial update. reservation_id and category_id
// distinguish explicit null (clear the relation) from omission; a non-null
// reference is re-checked against the entry's own trip.
func (s *spendEntryService) UpdateSpendEntry(spendEntryID uint, in SpendEntryUpdateInput) (*models.SpendEntry, error) {
	var entry *models.SpendEntry

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.SpendEntry
		if err := tx.First(&existing, spendEntryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSpendEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})

		if in.ReservationID.Set {
			if in.ReservationID.Value != nil {
				if err := requireReservationInTrip(tx, *in.ReservationID.Value, existing.TripID); err != nil {
					return err
				}
			}
			updates["reservation_id"] = in.ReservationID.Value
		}
		if in.CategoryID.Set {
			if in.CategoryID.Value != nil {
				if err := requireCategoryInTrip(tx, *in.CategoryID.Value, existing.TripID); err != nil {
					return err
				}
			}
			updates["category_id"] = in.CategoryID.Value
		}
		if in.Amount != nil {
			if err := checkNonNegative(in.Amount, "amount"); err != nil {
				return err
			}
			updates["amount"] = *in.Amount
		}
		if in.Currency != nil {
			currency, err := normalizeCurrency(*in.Currency, "currency")
			if err != nil {
				return err
			}
			updates["currency"] = currency
		}
		if in.OccurredAt != nil {
			updates["occurred_at"] = *in.OccurredAt
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Notes != nil {
			updates["notes"] = *in.Notes
		}

		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return translateWriteError(err)
			}
		}

		entry = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteSpendEntry removes a spend entry.
func (s *spendEntryService) DeleteSpendEntry(spendEntryID uint) error {
	var entry models.SpendEntry
	if err := s.db.First(&entry, spendEntryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSpendEntryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Delete(&entry).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SummarizeSpend aggregates a trip's ledger: total entry count and amount
// totals per currency, ordered by currency for deterministic output.
func (s *spendEntryService) SummarizeSpend(tripID uint) (*SpendSummary, error) {
	if err := requireTrip(s.db, tripID); err != nil {
		return nil, err
	}

	var totalEntries int64
	err := s.db.Model(&models.SpendEntry{}).
		Where("trip_id = ?", tripID).
		Count(&totalEntries).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalRows []CurrencyTotal
	err = s.db.Model(&models.SpendEntry{}).
		Select("currency, COALESCE(SUM(amount), 0) AS total").
		Where("trip_id = ?", tripID).
		Group("currency").
		Order("currency ASC").
		Scan(&totalRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if totalRows == nil {
		totalRows = []CurrencyTotal{}
	}

	return &SpendSummary{
		TripID:           tripID,
		TotalEntries:     totalEntries,
		TotalsByCurrency: totalRows,
	}, nil
}
