package routes

import (
	"notarius/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/v1")
	{
		api.GET("/availability", h.GetAvailability)
		api.POST("/quotes", h.GetQuote)
		api.POST("/holds", h.HoldSlot)
		api.GET("/holds", h.GetHold)
		api.DELETE("/holds", h.ReleaseHold)
		api.POST("/bookings", h.ConfirmBooking)
	}
	r.GET("/health", handlers.Health)
}
