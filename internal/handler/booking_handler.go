package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/response"
)

type bookingCoordinator interface {
	BookResource(ctx context.Context, req models.BookingRequest) (*dto.BookingResult, error)
}

type rescheduleSuggester interface {
	SuggestReschedule(ctx context.Context, bookingID int64, filter dto.RescheduleFilter) (*dto.RescheduleSuggestion, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// BookingHandler exposes booking and reschedule endpoints.
type BookingHandler struct {
	bookings   bookingCoordinator
	reschedule rescheduleSuggester
	cache      cacheInvalidator
	validator  *validator.Validate
}

// NewBookingHandler constructs the handler. cache may be nil.
func NewBookingHandler(bookings bookingCoordinator, reschedule rescheduleSuggester, cache cacheInvalidator) *BookingHandler {
	return &BookingHandler{bookings: bookings, reschedule: reschedule, cache: cache, validator: validator.New()}
}

// Create godoc
// @Summary Book a room, faculty slot or student-group slot
// @Description Confirms the booking when the slot is free. When it is occupied the response is 409 with the occupants and ranked alternatives; nothing is booked.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	resourceType, err := models.ParseResourceType(req.ResourceType)
	if err != nil {
		response.Error(c, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.bookings.BookResource(c.Request.Context(), models.BookingRequest{
		UserID:       claims.UserID,
		ResourceType: resourceType,
		ResourceID:   req.ResourceID,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Purpose:      req.Purpose,
		Attendees:    req.Attendees,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Success {
		response.JSON(c, http.StatusConflict, result, map[string]interface{}{"outcome": result.Outcome})
		return
	}
	if h.cache != nil {
		// Invalidate logs its own failures.
		h.cache.Invalidate(c.Request.Context()) //nolint:errcheck
	}
	response.Created(c, result)
}

// Reschedule godoc
// @Summary Suggest new slots for an existing booking
// @Description Ranks free slots for the booking within the configured horizon. The booking is not moved.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param payload body dto.RescheduleFilter false "Constraints for the new slot"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var filter dto.RescheduleFilter
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&filter); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reschedule payload"))
			return
		}
	}
	suggestion, err := h.reschedule.SuggestReschedule(c.Request.Context(), id, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if suggestion.NoAvailableSlot {
		meta = map[string]interface{}{"outcome": dto.BookingNoAvailableSlot}
	}
	response.JSON(c, http.StatusOK, suggestion, meta)
}
