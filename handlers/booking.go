package handlers

import (
	"errors"
	"net/http"
	"time"

	"podbooker/models"
	"podbooker/services/scheduling"
	"podbooker/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewBookingHandler(service scheduling.SchedulingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: service, Logger: logger}
}

// GetSlotsHandler returns the available slots for a date (YYYY-MM-DD, UTC).
func (h *BookingHandler) GetSlotsHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "Date query parameter is required.", "")
		return
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD form.", err.Error())
		return
	}

	slots, err := h.Service.ListAvailableSlots(c.Request.Context(), day)
	if err != nil {
		h.Logger.Error("listing available slots failed", zap.String("date", dateStr), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch calendar availability.", "")
		return
	}
	c.JSON(http.StatusOK, slots)
}

// BookSlotHandler books the requested slot for the guest.
func (h *BookingHandler) BookSlotHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	booking, err := h.Service.BookSlot(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrNoHostsConnected):
			utils.JSONError(c, http.StatusServiceUnavailable, "No hosts have connected their calendars.", "")
		case errors.Is(err, scheduling.ErrSlotUnavailable):
			utils.JSONError(c, http.StatusConflict, "This slot is no longer available. Please select another time.", "")
		case errors.Is(err, scheduling.ErrEventCreationFailed):
			utils.JSONError(c, http.StatusInternalServerError, "Failed to create calendar event.", "")
		default:
			h.Logger.Error("booking failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to book slot.", "")
		}
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingsHandler returns recorded bookings for a date (YYYY-MM-DD, UTC).
func (h *BookingHandler) GetBookingsHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "Date query parameter is required.", "")
		return
	}
	if _, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD form.", err.Error())
		return
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), dateStr)
	if err != nil {
		h.Logger.Error("listing bookings failed", zap.String("date", dateStr), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings.", "")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}
