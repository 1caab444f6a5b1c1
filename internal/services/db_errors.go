package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
)

// translateWriteError maps storage-level constraint violations that slipped
// past the application checks (lost races) back onto the matching AppError.
// The only unique constraint in the schema is (trip_id, name) on budget
// categories; check constraints cover amount and date-range invariants.
func translateWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(apperrors.ErrDuplicateCategoryName, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apperrors.Wrap(apperrors.ErrValidation, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// requireTrip verifies the parent trip exists before any dependent write.
func requireTrip(tx *gorm.DB, tripID uint) error {
	var count int64
	if err := tx.Model(&models.Trip{}).Where("id = ?", tripID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrTripNotFound
	}
	return nil
}
