package handlers

import (
	"net/http"
	"time"

	"notarius/services/scheduling"
	"notarius/utils"

	"github.com/gin-gonic/gin"
)

// GetQuote prices a service request for an address and requested time.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	var input struct {
		ServiceType   string    `json:"serviceType" binding:"required"`
		Address       string    `json:"address" binding:"required"`
		RequestedTime time.Time `json:"requestedTime" binding:"required"`
		PromotionCode string    `json:"promotionCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	breakdown, err := h.Engine.GetPriceQuote(c.Request.Context(),
		input.ServiceType, input.Address, input.RequestedTime, input.PromotionCode)
	if err != nil {
		if scheduling.IsConfigError(err) {
			utils.JSONError(c, http.StatusInternalServerError, "service misconfigured", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute quote", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"quote": breakdown})
}
