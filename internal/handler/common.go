package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/repository"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the caller's role from the context populated by the
// JWT middleware.
func getRole(c echo.Context) authz.Role {
	if s, ok := c.Get("role").(string); ok {
		return authz.Role(s)
	}
	return ""
}

// parseIDParam parses the :id path parameter into a non-zero uint64.
func parseIDParam(c echo.Context) (uint64, error) {
	return parseUintParam(c, "id")
}

// parseUintParam parses the named path parameter into a non-zero uint64.
func parseUintParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// domainErrJSON translates sentinel errors into JSON error responses.
// Business-rule violations map to 400, referential failures to their
// HTTP counterparts, and a corrupt counter to 500 because it signals
// data corruption, not a caller mistake. Unknown errors fall back to a
// generic 500.
func domainErrJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrSessionFull),
		errors.Is(err, model.ErrDuplicateBooking),
		errors.Is(err, model.ErrPastSession),
		errors.Is(err, model.ErrNoCreditsRemaining),
		errors.Is(err, model.ErrBundleExpired),
		errors.Is(err, model.ErrFreezeLimitReached),
		errors.Is(err, model.ErrInvalidCode),
		errors.Is(err, model.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, model.ErrCorruptCounter):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "data corruption detected"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
