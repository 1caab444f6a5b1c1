package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
)

// budgetCategoryService handles budget-category business logic.
type budgetCategoryService struct {
	db *gorm.DB
}

// NewBudgetCategoryService creates a new BudgetCategoryServicer.
func NewBudgetCategoryService(db *gorm.DB) BudgetCategoryServicer {
	return &budgetCategoryService{db: db}
}

// CreateCategory creates a budget category under a trip. Names are unique
// per trip and compared exactly (no normalization). The pre-check is a
// best-effort courtesy; the database unique constraint is the final arbiter
// and a lost race surfaces as the same conflict error.
func (s *budgetCategoryService) CreateCategory(tripID uint, name string, plannedAmount *float64, currency string) (*models.BudgetCategory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}
	if err := checkNonNegative(plannedAmount, "planned_amount"); err != nil {
		return nil, err
	}

	code := models.DefaultCurrency
	if currency != "" {
		var err error
		if code, err = normalizeCurrency(currency, "currency"); err != nil {
			return nil, err
		}
	}

	category := &models.BudgetCategory{
		TripID:        tripID,
		Name:          name,
		PlannedAmount: plannedAmount,
		Currency:      code,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := requireTrip(tx, tripID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.BudgetCategory{}).
			Where("trip_id = ? AND name = ?", tripID, name).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateCategoryName
		}

		if err := tx.Create(category).Error; err != nil {
			return translateWriteError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns a trip's budget categories ordered by name.
func (s *budgetCategoryService) ListCategories(tripID uint, page pagination.Query) ([]models.BudgetCategory, error) {
	page.Defaults(DefaultCategoryListLimit)

	if err := requireTrip(s.db, tripID); err != nil {
		return nil, err
	}

	var categories []models.BudgetCategory
	err := s.db.Where("trip_id = ?", tripID).
		Order("name ASC").
		Scopes(pagination.Scope(page)).
		Find(&categories).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID returns a budget category by ID.
func (s *budgetCategoryService) GetCategoryByID(categoryID uint) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update. A rename re-runs the per-trip
// uniqueness check, excluding the category itself.
func (s *budgetCategoryService) UpdateCategory(categoryID uint, in CategoryUpdateInput) (*models.BudgetCategory, error) {
	var category *models.BudgetCategory

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.BudgetCategory
		if err := tx.First(&existing, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := make(map[string]interface{})

		if in.Name != nil {
			if *in.Name == "" {
				return apperrors.WithMessage(apperrors.ErrValidation, "name must not be empty")
			}
			var count int64
			err := tx.Model(&models.BudgetCategory{}).
				Where("trip_id = ? AND name = ? AND id <> ?", existing.TripID, *in.Name, existing.ID).
				Count(&count).Error
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				return apperrors.ErrDuplicateCategoryName
			}
			updates["name"] = *in.Name
		}
		if in.PlannedAmount != nil {
			if err := checkNonNegative(in.PlannedAmount, "planned_amount"); err != nil {
				return err
			}
			updates["planned_amount"] = *in.PlannedAmount
		}
		if in.Currency != nil {
			code, err := normalizeCurrency(*in.Currency, "currency")
			if err != nil {
				return err
			}
			updates["currency"] = code
		}

		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return translateWriteError(err)
			}
		}

		category = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a budget category. Spend entries that pointed at it
// survive with the reference cleared, in the same transaction.
func (s *budgetCategoryService) DeleteCategory(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.BudgetCategory
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		err := tx.Model(&models.SpendEntry{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
