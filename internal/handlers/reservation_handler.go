package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
	"github.com/joshuabarraza/Trip-API/internal/services"
)

// ReservationHandler handles reservation-related requests.
type ReservationHandler struct {
	reservationService services.ReservationServicer
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationService services.ReservationServicer) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents the request payload for creating a
// reservation. Type and status accept any casing; the service normalizes
// them before checking membership.
type CreateReservationRequest struct {
	Type                  string                 `json:"type" binding:"required"`
	Status                string                 `json:"status"`
	Title                 string                 `json:"title" binding:"required,max=200"`
	Provider              *string                `json:"provider" binding:"omitempty,max=120"`
	ConfirmationCode      *string                `json:"confirmation_code" binding:"omitempty,max=80"`
	StartAt               *time.Time             `json:"start_at"`
	EndAt                 *time.Time             `json:"end_at"`
	Timezone              *string                `json:"timezone" binding:"omitempty,max=64,timezone"`
	LocationText          *string                `json:"location_text" binding:"omitempty,max=200"`
	Notes                 *string                `json:"notes"`
	EstimatedCostAmount   *float64               `json:"estimated_cost_amount" binding:"omitempty,gte=0"`
	EstimatedCostCurrency string                 `json:"estimated_cost_currency" binding:"omitempty,currency_code"`
	Meta                  map[string]interface{} `json:"meta"`
}

// UpdateReservationRequest represents the partial-update payload for a
// reservation. Absent fields leave the stored values untouched.
type UpdateReservationRequest struct {
	Type                  *string                `json:"type"`
	Status                *string                `json:"status"`
	Title                 *string                `json:"title" binding:"omitempty,max=200"`
	Provider              *string                `json:"provider" binding:"omitempty,max=120"`
	ConfirmationCode      *string                `json:"confirmation_code" binding:"omitempty,max=80"`
	StartAt               *time.Time             `json:"start_at"`
	EndAt                 *time.Time             `json:"end_at"`
	Timezone              *string                `json:"timezone" binding:"omitempty,max=64,timezone"`
	LocationText          *string                `json:"location_text" binding:"omitempty,max=200"`
	Notes                 *string                `json:"notes"`
	EstimatedCostAmount   *float64               `json:"estimated_cost_amount" binding:"omitempty,gte=0"`
	EstimatedCostCurrency *string                `json:"estimated_cost_currency" binding:"omitempty,currency_code"`
	Meta                  map[string]interface{} `json:"meta"`
}

// CreateReservation handles POST /v1/trips/:trip_id/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	reservation, err := h.reservationService.CreateReservation(tripID, services.ReservationCreateInput{
		Type:                  req.Type,
		Status:                req.Status,
		Title:                 req.Title,
		Provider:              req.Provider,
		ConfirmationCode:      req.ConfirmationCode,
		StartAt:               req.StartAt,
		EndAt:                 req.EndAt,
		Timezone:              req.Timezone,
		LocationText:          req.LocationText,
		Notes:                 req.Notes,
		EstimatedCostAmount:   req.EstimatedCostAmount,
		EstimatedCostCurrency: req.EstimatedCostCurrency,
		Meta:                  req.Meta,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// ListReservations handles GET /v1/trips/:trip_id/reservations with optional
// type/status filters and a [from, to] window on start_at.
func (h *ReservationHandler) ListReservations(c *gin.Context) {
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

	filter := services.ReservationFilter{
		Type:   optionalQuery(c, "type"),
		Status: optionalQuery(c, "status"),
		From:   from,
		To:     to,
	}

	reservations, err := h.reservationService.ListReservations(tripID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// GetReservationSummary handles GET /v1/trips/:trip_id/reservations/summary.
func (h *ReservationHandler) GetReservationSummary(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reservationService.SummarizeReservations(tripID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetReservation handles GET /v1/reservations/:reservation_id.
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	reservationID, err := parsePathID(c, "reservation_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	reservation, err := h.reservationService.GetReservationByID(reservationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// UpdateReservation handles PATCH /v1/reservations/:reservation_id.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	reservationID, err := parsePathID(c, "reservation_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	reservation, err := h.reservationService.UpdateReservation(reservationID, services.ReservationUpdateInput{
		Type:                  req.Type,
		Status:                req.Status,
		Title:                 req.Title,
		Provider:              req.Provider,
		ConfirmationCode:      req.ConfirmationCode,
		StartAt:               req.StartAt,
		EndAt:                 req.EndAt,
		Timezone:              req.Timezone,
		LocationText:          req.LocationText,
		Notes:                 req.Notes,
		EstimatedCostAmount:   req.EstimatedCostAmount,
		EstimatedCostCurrency: req.EstimatedCostCurrency,
		Meta:                  req.Meta,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation handles DELETE /v1/reservations/:reservation_id. Spend
// entries referencing the reservation survive with the reference cleared.
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	reservationID, err := parsePathID(c, "reservation_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.reservationService.DeleteReservation(reservationID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
