package handlers

import (
	"net/http"
	"time"

	"notarius/services/booking"
	"notarius/services/scheduling"
	"notarius/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the slot and pricing engine over HTTP.
type BookingHandler struct {
	Engine booking.BookingEngine
}

func NewBookingHandler(engine booking.BookingEngine) *BookingHandler {
	return &BookingHandler{Engine: engine}
}

// GetAvailability returns the offerable slots for a date and service type.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceType := c.Query("serviceType")
	if dateStr == "" || serviceType == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date and serviceType query parameters are required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.Engine.GetAvailableSlots(c.Request.Context(), date, serviceType)
	if err != nil {
		if scheduling.IsConfigError(err) {
			utils.JSONError(c, http.StatusInternalServerError, "service misconfigured", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        dateStr,
		"serviceType": serviceType,
		"slots":       slots,
	})
}
