package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/handler"
)

// RegisterBookings registers the booking lifecycle endpoints. All of
// them require authentication; role scoping happens in the handlers.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	auth := protected(e, jwtSecret)
	auth.POST("/bookings", h.Create)
	auth.DELETE("/bookings/:id", h.Cancel)
	auth.GET("/bookings", h.List)
	auth.GET("/my-bookings", h.MyBookings)
}
