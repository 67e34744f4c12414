package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/handler"
)

// RegisterBundles registers the prepaid bundle endpoints.
func RegisterBundles(e *echo.Echo, h *handler.BundleHandler, jwtSecret string) {
	auth := protected(e, jwtSecret)
	auth.POST("/bundles", h.Create)
	auth.GET("/bundles", h.List)
	auth.GET("/bundles/:id", h.Get)
	auth.POST("/bundles/:id/use", h.UseCredit)
	auth.DELETE("/bundles/:id", h.Delete)
	auth.GET("/my-bundles", h.MyBundles)
}

// RegisterMemberships registers the membership endpoints including the
// freeze lifecycle.
func RegisterMemberships(e *echo.Echo, h *handler.MembershipHandler, jwtSecret string) {
	auth := protected(e, jwtSecret)
	auth.POST("/memberships", h.Create)
	auth.GET("/memberships", h.List)
	auth.GET("/memberships/:id", h.Get)
	auth.POST("/memberships/:id/freeze", h.Freeze)
	auth.POST("/memberships/:id/unfreeze", h.Unfreeze)
	auth.DELETE("/memberships/:id", h.Delete)
	auth.GET("/my-membership", h.MyMembership)
}
