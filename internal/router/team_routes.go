package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/handler"
)

// RegisterTeams registers team and roster endpoints.
func RegisterTeams(e *echo.Echo, h *handler.TeamHandler, jwtSecret string) {
	auth := protected(e, jwtSecret)
	auth.POST("/teams", h.Create)
	auth.GET("/teams", h.List)
	auth.GET("/teams/:id", h.Get)
	auth.POST("/teams/:id/players", h.AddPlayer)
	auth.DELETE("/teams/:id/players/:player_id", h.RemovePlayer)
	auth.DELETE("/teams/:id", h.Delete)
}
