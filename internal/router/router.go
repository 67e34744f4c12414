// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/handler"
	"github.com/smartfc/football-center/internal/middleware"
)

// allRoles lists every valid role for endpoints open to any
// authenticated account.
var allRoles = []string{
	string(authz.RoleAdmin),
	string(authz.RoleCoach),
	string(authz.RolePlayer),
	string(authz.RoleParent),
	string(authz.RoleChild),
}

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Register, login and
// the refresh-token operations are unauthenticated; profile and
// logout-all require a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(allRoles...),
	)
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// protected returns a /v1 group requiring a valid token and any known
// role; fine-grained permissions stay in the handlers.
func protected(e *echo.Echo, jwtSecret string) *echo.Group {
	return e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(allRoles...),
	)
}
