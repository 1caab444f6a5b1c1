package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
	"github.com/joshuabarraza/Trip-API/internal/services"
)

// SpendEntryHandler handles spend-entry requests.
type SpendEntryHandler struct {
	spendService services.SpendEntryServicer
}

// NewSpendEntryHandler creates a new SpendEntryHandler.
func NewSpendEntryHandler(spendService services.SpendEntryServicer) *SpendEntryHandler {
	return &SpendEntryHandler{spendService: spendService}
}

// CreateSpendEntryRequest represents the request payload for creating a spend
// entry. reservation_id and category_id must belong to the same trip as the
// entry.
type CreateSpendEntryRequest struct {
	ReservationID *uint      `json:"reservation_id"`
	CategoryID    *uint      `json:"category_id"`
	Amount        *float64   `json:"amount" binding:"required,gte=0"`
	Currency      string     `json:"currency" binding:"omitempty,currency_code"`
	OccurredAt    *time.Time `json:"occurred_at" binding:"required"`
	Description   *string    `json:"description" binding:"omitempty,max=200"`
	Notes         *string    `json:"notes"`
}

// UpdateSpendEntryRequest represents the partial-update payload for a spend
// entry. reservation_id and category_id accept explicit null to clear the
// relation; omitting them leaves the stored references untouched.
type UpdateSpendEntryRequest struct {
	ReservationID services.OptionalRef `json:"reservation_id"`
	CategoryID    services.OptionalRef `json:"category_id"`
	Amount        *float64             `json:"amount" binding:"omitempty,gte=0"`
	Currency      *string              `json:"currency" binding:"omitempty,currency_code"`
	OccurredAt    *time.Time           `json:"occurred_at"`
	Description   *string              `json:"description" binding:"omitempty,max=200"`
	Notes         *string              `json:"notes"`
}

// CreateSpendEntry handles POST /v1/trips/:trip_id/spend-entries.
func (h *SpendEntryHandler) CreateSpendEntry(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSpendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	entry, err := h.spendService.CreateSpendEntry(tripID, services.SpendEntryCreateInput{
		ReservationID: req.ReservationID,
		CategoryID:    req.CategoryID,
		Amount:        *req.Amount,
		Currency:      req.Currency,
		OccurredAt:    *req.OccurredAt,
		Description:   req.Description,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListSpendEntries handles GET /v1/trips/:trip_id/spend-entries with optional
// currency/reservation_id/category_id filters and a [from, to] window on
// occurred_at.
func (h *SpendEntryHandler) ListSpendEntries(c *gin.Context) {
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

	reservationID, err := optionalIDQuery(c, "reservation_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := optionalIDQuery(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.SpendEntryFilter{
		Currency:      optionalQuery(c, "currency"),
		ReservationID: reservationID,
		CategoryID:    categoryID,
		From:          from,
		To:            to,
	}

	entries, err := h.spendService.ListSpendEntries(tripID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetSpendSummary handles GET /v1/trips/:trip_id/spend-entries/summary.
func (h *SpendEntryHandler) GetSpendSummary(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.spendService.SummarizeSpend(tripID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetSpendEntry handles GET /v1/spend-entries/:spend_entry_id.
func (h *SpendEntryHandler) GetSpendEntry(c *gin.Context) {
	spendEntryID, err := parsePathID(c, "spend_entry_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.spendService.GetSpendEntryByID(spendEntryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// UpdateSpendEntry handles PATCH /v1/spend-entries/:spend_entry_id.
func (h *SpendEntryHandler) UpdateSpendEntry(c *gin.Context) {
	spendEntryID, err := parsePathID(c, "spend_entry_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSpendEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	entry, err := h.spendService.UpdateSpendEntry(spendEntryID, services.SpendEntryUpdateInput{
		ReservationID: req.ReservationID,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		OccurredAt:    req.OccurredAt,
		Description:   req.Description,
		Notes:         req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteSpendEntry handles DELETE /v1/spend-entries/:spend_entry_id.
func (h *SpendEntryHandler) DeleteSpendEntry(c *gin.Context) {
	spendEntryID, err := parsePathID(c, "spend_entry_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.spendService.DeleteSpendEntry(spendEntryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
