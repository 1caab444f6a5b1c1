package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
	"github.com/joshuabarraza/Trip-API/internal/models"
	"github.com/joshuabarraza/Trip-API/internal/pagination"
	"github.com/joshuabarraza/Trip-API/internal/services"
)

// TripHandler handles trip-related requests.
type TripHandler struct {
	tripService services.TripServicer
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService services.TripServicer) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest represents the request payload for creating a trip.
type CreateTripRequest struct {
	Title       string           `json:"title" binding:"required,min=1,max=120"`
	Destination *string          `json:"destination" binding:"omitempty,max=120"`
	StartDate   *models.DateOnly `json:"start_date"`
	EndDate     *models.DateOnly `json:"end_date"`
	Status      string           `json:"status" binding:"omitempty,max=30"`
	Tags        []string         `json:"tags"`
}

// UpdateTripRequest represents the partial-update payload for a trip.
// Absent fields leave the stored values untouched.
type UpdateTripRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=120"`
	Destination *string          `json:"destination" binding:"omitempty,max=120"`
	StartDate   *models.DateOnly `json:"start_date"`
	EndDate     *models.DateOnly `json:"end_date"`
	Status      *string          `json:"status" binding:"omitempty,max=30"`
	Tags        *[]string        `json:"tags"`
}

// CreateTrip handles POST /v1/trips.
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	trip, err := h.tripService.CreateTrip(services.TripCreateInput{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// ListTrips handles GET /v1/trips.
func (h *TripHandler) ListTrips(c *gin.Context) {
	var page pagination.Query
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	trips, err := h.tripService.ListTrips(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// GetTrip handles GET /v1/trips/:trip_id.
func (h *TripHandler) GetTrip(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trip, err := h.tripService.GetTripByID(tripID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// UpdateTrip handles PATCH /v1/trips/:trip_id.
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	trip, err := h.tripService.UpdateTrip(tripID, services.TripUpdateInput{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Tags:        req.Tags,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// DeleteTrip handles DELETE /v1/trips/:trip_id. Deleting a trip cascades to
// its reservations, budget categories, and spend entries.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	tripID, err := parsePathID(c, "trip_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tripService.DeleteTrip(tripID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
