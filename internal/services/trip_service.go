package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
)

// tripService handles trip-related business logic.
type tripService struct {
	db *gorm.DB
}

// NewTripService creates a new TripServicer.
func NewTripService(db *gorm.DB) TripServicer {
	return &tripService{db: db}
}

// CreateTrip creates a new trip. Status defaults to "planning".
func (s *tripService) CreateTrip(in TripCreateInput) (*models.Trip, error) {
	if in.Title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "title is required")
	}

	status := in.Status
	if status == "" {
		status = models.DefaultTripStatus
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	trip := &models.Trip{
		Title:       in.Title,
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
		Tags:        tags,
	}

	if err := s.db.Create(trip).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return trip, nil
}

// ListTrips returns trips newest first (identifier descending).
func (s *tripService) ListTrips(page pagination.Query) ([]models.Trip, error) {
	page.Defaults(DefaultListLimit)

	var trips []models.Trip
	if err := s.db.Order("id DESC").Scopes(pagination.Scope(page)).Find(&trips).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return trips, nil
}

// GetTripByID returns a trip by ID.
func (s *tripService) GetTripByID(tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := s.db.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTripNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &trip, nil
}

// UpdateTrip applies the present fields of a partial update to a trip.
func (s *tripService) UpdateTrip(tripID uint, in TripUpdateInput) (*models.Trip, error) {
	trip, err := s.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "title must not be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Destination != nil {
		updates["destination"] = *in.Destination
	}
	if in.StartDate != nil {
		updates["start_date"] = *in.StartDate
	}
	if in.EndDate != nil {
		updates["end_date"] = *in.EndDate
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Tags != nil {
		updates["tags"] = models.StringList(*in.Tags)
	}

	if len(updates) > 0 {
		if err := s.db.Model(trip).Updates(updates).Error; err != nil {
			return nil, translateWriteError(err)
		}
	}
	return trip, nil
}

// DeleteTrip removes a trip and everything it owns: reservations, budget
// categories, and spend entries go with it, in one transaction.
func (s *tripService) DeleteTrip(tripID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var trip models.Trip
		if err := tx.First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTripNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Where("trip_id = ?", tripID).Delete(&models.SpendEntry{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.BudgetCategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("trip_id = ?", tripID).Delete(&models.Reservation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&trip).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
