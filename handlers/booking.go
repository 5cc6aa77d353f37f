package handlers

import (
	"net/http"
	"time"

	"notarius/models"
	"notarius/services/booking"
	"notarius/services/reservation"
	"notarius/services/scheduling"
	"notarius/utils"

	"github.com/gin-gonic/gin"
)

// HoldSlot places a checkout hold on a slot.
func (h *BookingHandler) HoldSlot(c *gin.Context) {
	var input struct {
		Start       time.Time `json:"start" binding:"required"`
		ServiceType string    `json:"serviceType" binding:"required"`
		Holder      string    `json:"holder" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hold, err := h.Engine.HoldSlot(c.Request.Context(), input.Start, input.ServiceType, input.Holder)
	if err != nil {
		if booking.IsConflict(err) {
			// Retryable: the client should refresh availability.
			c.JSON(http.StatusConflict, gin.H{
				"error":               "slot just became unavailable",
				"refreshAvailability": true,
			})
			return
		}
		if scheduling.IsConfigError(err) {
			utils.JSONError(c, http.StatusInternalServerError, "service misconfigured", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to hold slot", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"hold": hold})
}

// GetHold returns the current hold state for a slot (support tooling).
func (h *BookingHandler) GetHold(c *gin.Context) {
	start, serviceType, ok := slotParams(c)
	if !ok {
		return
	}

	hold, err := h.Engine.GetHold(c.Request.Context(), start, serviceType)
	if err != nil {
		if reservation.IsMissingHold(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no hold for slot"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to read hold", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"hold": hold})
}

// ReleaseHold drops a hold when the customer abandons checkout.
func (h *BookingHandler) ReleaseHold(c *gin.Context) {
	start, serviceType, ok := slotParams(c)
	if !ok {
		return
	}

	if err := h.Engine.ReleaseHold(c.Request.Context(), start, serviceType); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to release hold", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": true})
}

// ConfirmBooking finalizes a checkout.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		Start   time.Time             `json:"start" binding:"required"`
		Holder  string                `json:"holder" binding:"required"`
		Details models.BookingDetails `json:"details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, breakdown, err := h.Engine.ConfirmBooking(c.Request.Context(), input.Start, input.Holder, input.Details)
	if err != nil {
		if booking.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":               "slot just became unavailable",
				"refreshAvailability": true,
			})
			return
		}
		if scheduling.IsConfigError(err) {
			utils.JSONError(c, http.StatusInternalServerError, "service misconfigured", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "booking confirmation failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking": record,
		"quote":   breakdown,
	})
}

func slotParams(c *gin.Context) (time.Time, string, bool) {
	startStr := c.Query("start")
	serviceType := c.Query("serviceType")
	if startStr == "" || serviceType == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start and serviceType query parameters are required")
		return time.Time{}, "", false
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be RFC3339")
		return time.Time{}, "", false
	}
	return start, serviceType, true
}
