package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/handler"
)

// RegisterDiscounts registers the discount endpoints. Applying a code
// is open to any authenticated user; catalogue management is admin
// only and enforced in the handlers.
func RegisterDiscounts(e *echo.Echo, h *handler.DiscountHandler, jwtSecret string) {
	auth := protected(e, jwtSecret)
	auth.POST("/discounts/apply", h.Apply)
	auth.GET("/discounts/active", h.Active)
	auth.GET("/discounts", h.List)
	auth.POST("/discounts", h.Create)
	auth.PUT("/discounts/:id", h.Update)
	auth.DELETE("/discounts/:id", h.Delete)
}
