package routes

import (
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes sets up routes for the booking lifecycle
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.GET("/", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)

		// Staged checkout: stage two records frequency and terms, stage
		// three records payment and finalizes status.
		bookings.PUT("/stage-two/:id", bookingHandler.StageTwo)
		bookings.PUT("/stage-three/:id", bookingHandler.StageThree)

		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
		bookings.DELETE("/:id", bookingHandler.DeleteBooking)
	}
}
