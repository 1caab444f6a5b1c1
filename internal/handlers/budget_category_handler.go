package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
	"github.com/joshuabarraza/Trip-API/internal/services"
)

// BudgetCategoryHandler handles budget-category requests.
type BudgetCategoryHandler struct {
	categoryService services.BudgetCategoryServicer
}

// NewBudgetCategoryHandler creates a new BudgetCategoryHandler.
func NewBudgetCategoryHandler(categoryService services.BudgetCategoryServicer) *BudgetCategoryHandler {
	return &BudgetCategoryHandler{categoryService: categoryService}
}

// CreateBudgetCategoryRequest represents the request payload for creating a
// budget category.
type CreateBudgetCategoryRequest struct {
	Name          string   `json:"name" binding:"required,max=80"`
	PlannedAmount *float64 `json:"planned_amount" binding:"omitempty,gte=0"`
	Currency      string   `json:"currency" binding:"omitempty,currency_code"`
}

// UpdateBudgetCategoryRequest represents the partial-update payload for a
// budget category.
type UpdateBudgetCategoryRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=80"`
	PlannedAmount *float64 `json:"planned_amount" binding:"omitempty,gte=0"`
	Currency      *string  `json:"currency" binding:"omitempty,currency_code"`
}

// CreateBudgetCategory handles POST /v1/trips/:trip_id/budget-categories.
func (h *BudgetCategoryHandler) CreateBudgetCategory(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(tripID, req.Name, req.PlannedAmount, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListBudgetCategories handles GET /v1/trips/:trip_id/budget-categories.
func (h *BudgetCategoryHandler) ListBudgetCategories(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.Query
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	categories, err := h.categoryService.ListCategories(tripID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetBudgetCategory handles GET /v1/budget-categories/:category_id.
func (h *BudgetCategoryHandler) GetBudgetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateBudgetCategory handles PATCH /v1/budget-categories/:category_id.
func (h *BudgetCategoryHandler) UpdateBudgetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, services.CategoryUpdateInput{
		Name:          req.Name,
		PlannedAmount: req.PlannedAmount,
		Currency:      req.Currency,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteBudgetCategory handles DELETE /v1/budget-categories/:category_id.
// Spend entries referencing the category survive with the reference cleared.
func (h *BudgetCategoryHandler) DeleteBudgetCategory(c *gin.Context) {
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
