package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
)

// Input normalization and constraint checks shared by the create and update
// paths. All of them run before any record is written.

func normalizeReservationType(raw string) (models.ReservationType, error) {
	t, ok := models.NormalizeReservationType(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("type must be one of: %s", strings.Join(models.ReservationTypeValues(), ", ")))
	}
	return t, nil
}

func normalizeReservationStatus(raw string) (models.ReservationStatus, error) {
	st, ok := models.NormalizeReservationStatus(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("status must be one of: %s", strings.Join(models.ReservationStatusValues(), ", ")))
	}
	return st, nil
}

func normalizeCurrency(raw, field string) (string, error) {
	code, ok := models.NormalizeCurrency(raw)
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("%s must be a 3-letter code (e.g., USD)", field))
	}
	return code, nil
}

// checkDateOrder enforces end_at >= start_at when both are present. Callers
// pass the effective values, so a partial update that changes one side is
// still checked against the stored other side.
func checkDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.WithMessage(apperrors.ErrValidation, "end_at must be >= start_at")
	}
	return nil
}

func checkNonNegative(v *float64, field string) error {
	if v != nil && *v < 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, fmt.Sprintf("%s must be >= 0", field))
	}
	return nil
}
