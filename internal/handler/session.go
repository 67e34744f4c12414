package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/repository"
)

// Session duration and capacity bounds enforced at creation.
const (
	minDurationMinutes = 15
	maxDurationMinutes = 480
	minCapacity        = 1
	maxCapacity        = 100
	upcomingLimit      = 10
)

// SessionHandler exposes CRUD and query endpoints for training
// sessions. Capacity is fixed at creation; spots_left never moves
// through this handler.
type SessionHandler struct {
	SessionRepo *repository.SessionRepo
	BookingRepo *repository.BookingRepo
	UserRepo    *repository.UserRepo
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessionRepo *repository.SessionRepo, bookingRepo *repository.BookingRepo, userRepo *repository.UserRepo) *SessionHandler {
	if sessionRepo == nil || bookingRepo == nil || userRepo == nil {
		panic("nil repository passed to NewSessionHandler")
	}
	return &SessionHandler{SessionRepo: sessionRepo, BookingRepo: bookingRepo, UserRepo: userRepo}
}

type sessionRequest struct {
	Name            string          `json:"name"`
	SessionType     string          `json:"session_type"`
	CoachID         *uint64         `json:"coach_id"`
	Date            time.Time       `json:"date"`
	DurationMinutes uint32          `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Capacity        uint32          `json:"capacity"`
}

// validate applies the creation rules. requireFuture is false on
// update so an already started session can still be renamed.
func (req *sessionRequest) validate(requireFuture bool) string {
	if req.Name == "" {
		return "name is required"
	}
	if !model.ValidSessionType(req.SessionType) {
		return "invalid session_type"
	}
	if req.DurationMinutes < minDurationMinutes || req.DurationMinutes > maxDurationMinutes {
		return "duration_minutes must be between 15 and 480"
	}
	if req.Price.IsNegative() {
		return "price must not be negative"
	}
	if requireFuture && !req.Date.After(time.Now().UTC()) {
		return "date must be in the future"
	}
	return ""
}

// checkCoach verifies the referenced account exists and carries the
// coach role.
func (h *SessionHandler) checkCoach(c echo.Context, coachID uint64) string {
	u, err := h.UserRepo.GetByID(c.Request().Context(), coachID)
	if err != nil {
		return "coach not found"
	}
	if authz.Role(u.Role) != authz.RoleCoach {
		return "coach_id must reference a coach account"
	}
	return ""
}

// Create handles POST /v1/sessions. Admins and coaches only.
// spots_left starts equal to capacity.
func (h *SessionHandler) Create(c echo.Context) error {
	if !authz.CanManageSessions(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(true); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if req.Capacity < minCapacity || req.Capacity > maxCapacity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be between 1 and 100"})
	}
	if req.CoachID != nil {
		if msg := h.checkCoach(c, *req.CoachID); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
	}
	s := &model.Session{
		Name:            req.Name,
		SessionType:     req.SessionType,
		CoachID:         req.CoachID,
		Date:            req.Date.UTC(),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Capacity:        req.Capacity,
		SpotsLeft:       req.Capacity,
	}
	if err := h.SessionRepo.Create(c.Request().Context(), s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create session"})
	}
	return c.JSON(http.StatusCreated, s)
}

// List handles GET /v1/sessions with optional query filters:
// session_type, coach_id, date_from, date_to (RFC 3339), upcoming=true
// and available=true.
func (h *SessionHandler) List(c echo.Context) error {
	var f repository.SessionFilter
	f.SessionType = c.QueryParam("session_type")
	if f.SessionType != "" && !model.ValidSessionType(f.SessionType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session_type"})
	}
	if v := c.QueryParam("coach_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach_id"})
		}
		f.CoachID = id
	}
	if v := c.QueryParam("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_from"})
		}
		f.DateFrom = &t
	}
	if v := c.QueryParam("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date_to"})
		}
		f.DateTo = &t
	}
	if c.QueryParam("upcoming") == "true" {
		now := time.Now().UTC()
		f.Upcoming = &now
	}
	f.Available = c.QueryParam("available") == "true"
	sessions, err := h.SessionRepo.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sessions"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sessions_count": len(sessions),
		"sessions":       sessions,
	})
}

// Get handles GET /v1/sessions/:id.
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	s, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// Update handles PUT /v1/sessions/:id. Capacity and spots_left cannot
// be changed here; a capacity mismatch with live bookings would break
// the spot accounting.
func (h *SessionHandler) Update(c echo.Context) error {
	if !authz.CanManageSessions(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if req.CoachID != nil {
		if msg := h.checkCoach(c, *req.CoachID); msg != "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
		}
	}
	s := &model.Session{
		ID:              id,
		Name:            req.Name,
		SessionType:     req.SessionType,
		CoachID:         req.CoachID,
		Date:            req.Date.UTC(),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}
	if err := h.SessionRepo.Update(c.Request().Context(), s); err != nil {
		return domainErrJSON(c, err)
	}
	updated, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/sessions/:id. Bookings cascade away with
// the session.
func (h *SessionHandler) Delete(c echo.Context) error {
	if !authz.CanManageSessions(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	if err := h.SessionRepo.Delete(c.Request().Context(), id); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "session deleted"})
}

// Upcoming handles GET /v1/sessions/upcoming: the next sessions by
// date, capped at ten.
func (h *SessionHandler) Upcoming(c echo.Context) error {
	sessions, err := h.SessionRepo.Upcoming(c.Request().Context(), time.Now().UTC(), upcomingLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sessions"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sessions_count": len(sessions),
		"sessions":       sessions,
	})
}

// Available handles GET /v1/sessions/available: upcoming sessions that
// still have open spots.
func (h *SessionHandler) Available(c echo.Context) error {
	now := time.Now().UTC()
	sessions, err := h.SessionRepo.List(c.Request().Context(), repository.SessionFilter{
		Upcoming:  &now,
		Available: true,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load sessions"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"sessions_count": len(sessions),
		"sessions":       sessions,
	})
}

// Stats handles GET /v1/sessions/stats. Admins only.
func (h *SessionHandler) Stats(c echo.Context) error {
	if getRole(c) != authz.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	st, err := h.SessionRepo.Stats(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute stats"})
	}
	return c.JSON(http.StatusOK, st)
}

// Bookings handles GET /v1/sessions/:id/bookings. Admins see any
// session's bookings, coaches only their own sessions'.
func (h *SessionHandler) Bookings(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	s, err := h.SessionRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	if !authz.CanViewSessionBookings(getRole(c), callerID, s.CoachID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	details, err := h.BookingRepo.ListBySession(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session_id":     s.ID,
		"session_name":   s.Name,
		"spots_left":     s.SpotsLeft,
		"bookings_count": len(details),
		"bookings":       details,
	})
}
