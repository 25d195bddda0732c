package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/dto"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
	appErrors "github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/errors"
	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/pkg/response"
)

type availabilityReader interface {
	Entries(ctx context.Context, ref models.ResourceRef, date time.Time) ([]models.BusyEntry, error)
	IsFree(ctx context.Context, ref models.ResourceRef, date time.Time, start, end models.TimeOfDay) (bool, error)
}

type slotPreviewer interface {
	PreviewSlots(minutes int, days []models.Weekday) []models.Interval
}

// AvailabilityHandler answers read-only availability and grid questions.
type AvailabilityHandler struct {
	availability availabilityReader
	slots        slotPreviewer
	validator    *validator.Validate
}

// NewAvailabilityHandler constructs an availability handler.
func NewAvailabilityHandler(availability availabilityReader, slots slotPreviewer) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, slots: slots, validator: validator.New()}
}

// Resource godoc
// @Summary Busy intervals of a resource on a date
// @Tags Availability
// @Produce json
// @Param type path string true "room, faculty or student_group"
// @Param id path int true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start query string false "Probe start (HH:MM)"
// @Param end query string false "Probe end (HH:MM)"
// @Success 200 {object} response.Envelope
// @Router /resources/{type}/{id}/availability [get]
func (h *AvailabilityHandler) Resource(c *gin.Context) {
	resourceType, err := models.ParseResourceType(c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	date, err := parseDate(query.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	ref := models.ResourceRef{Type: resourceType, ID: id}
	ctx := c.Request.Context()

	busy, err := h.availability.Entries(ctx, ref, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	result := dto.AvailabilityResponse{Resource: ref, Date: models.DateOnly(date), Busy: busy}
	if query.Start != "" || query.End != "" {
		start, err := models.ParseTimeOfDay(query.Start)
		if err != nil {
			response.Error(c, err)
			return
		}
		end, err := models.ParseTimeOfDay(query.End)
		if err != nil {
			response.Error(c, err)
			return
		}
		free, err := h.availability.IsFree(ctx, ref, date, start, end)
		if err != nil {
			response.Error(c, err)
			return
		}
		result.IsFree = &free
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Slots godoc
// @Summary Preview candidate slots for a duration
// @Tags Availability
// @Produce json
// @Param minutes query int true "Slot length in minutes"
// @Param days query string false "Comma separated weekdays, e.g. monday,tuesday"
// @Success 200 {object} response.Envelope
// @Router /scheduling/slots [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	var query dto.SlotPreviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	if err := h.validator.Struct(query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "minutes must be between 1 and 1440"))
		return
	}
	days, err := parseWeekdays(query.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	slots := h.slots.PreviewSlots(query.Minutes, days)
	if slots == nil {
		slots = []models.Interval{}
	}
	response.JSON(c, http.StatusOK, dto.SlotPreviewResponse{Minutes: query.Minutes, Slots: slots}, map[string]interface{}{"count": len(slots)})
}
