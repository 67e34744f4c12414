package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/handler"
)

// RegisterSessions registers the session catalogue and management
// endpoints. Browsing is public and runs through the response cache;
// management requires authentication and is gated per handler.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1", cache)
	pub.GET("/sessions", h.List)
	pub.GET("/sessions/upcoming", h.Upcoming)
	pub.GET("/sessions/available", h.Available)
	pub.GET("/sessions/:id", h.Get)

	auth := protected(e, jwtSecret)
	auth.POST("/sessions", h.Create)
	auth.PUT("/sessions/:id", h.Update)
	auth.DELETE("/sessions/:id", h.Delete)
	auth.GET("/sessions/stats", h.Stats)
	auth.GET("/sessions/:id/bookings", h.Bookings)
}
