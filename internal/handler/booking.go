package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/queue"
	"github.com/smartfc/football-center/internal/repository"
	queue_publisher "github.com/smartfc/football-center/internal/service"
)

// BookingHandler implements the booking lifecycle. Creating and
// cancelling a booking each run as one transaction: the session row is
// locked first, the rule checks run against the locked counters, and
// the booking write and the spots_left mutation commit together. No
// request can observe a booking without its reserved spot or vice
// versa.
type BookingHandler struct {
	SessionRepo *repository.SessionRepo
	BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler. All dependencies must
// be non-nil.
func NewBookingHandler(sessionRepo *repository.SessionRepo, bookingRepo *repository.BookingRepo) *BookingHandler {
	if sessionRepo == nil || bookingRepo == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{SessionRepo: sessionRepo, BookingRepo: bookingRepo}
}

// Create handles POST /v1/bookings. The authenticated caller is bound
// as the player. Checks run in a fixed order against the locked
// session row: capacity, duplicate, past date. On success it returns
// 201 with the booking and the session's updated spots_left.
func (h *BookingHandler) Create(c echo.Context) error {
	playerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if !authz.CanBook(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var body struct {
		SessionID uint64 `json:"session_id"`
	}
	if err := c.Bind(&body); err != nil || body.SessionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}
	ctx := c.Request().Context()
	tx, err := h.SessionRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	session, err := h.SessionRepo.GetForUpdateTx(ctx, tx, body.SessionID)
	if err != nil {
		return domainErrJSON(c, err)
	}
	already, err := h.BookingRepo.ExistsForPlayerTx(ctx, tx, playerID, session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check existing booking"})
	}
	now := time.Now().UTC()
	if err := model.ValidateBooking(session, already, now); err != nil {
		return domainErrJSON(c, err)
	}
	if err := session.Reserve(); err != nil {
		return domainErrJSON(c, err)
	}
	booking := &model.Booking{PlayerID: playerID, SessionID: session.ID}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := h.SessionRepo.UpdateSpotsTx(ctx, tx, session.ID, session.SpotsLeft); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update session spots"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	// Best effort: a broker outage must not fail a committed booking.
	_ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:        queue.BookingConfirmed,
		BookingID:   booking.ID,
		PlayerID:    booking.PlayerID,
		SessionID:   session.ID,
		SessionName: session.Name,
		SessionDate: session.Date.Format(time.RFC3339),
		SpotsLeft:   session.SpotsLeft,
		OccurredAt:  now.Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, echo.Map{
		"booking": echo.Map{
			"id":         booking.ID,
			"player_id":  booking.PlayerID,
			"session_id": booking.SessionID,
			"status":     booking.Status,
			"booked_at":  booking.BookedAt,
		},
		"spots_left": session.SpotsLeft,
	})
}

// Cancel handles DELETE /v1/bookings/:id. The booking row is deleted
// and one spot returned to its session in the same transaction; the
// release is clamped at capacity. Players cancel their own bookings,
// coaches those of their sessions, admins any.
func (h *BookingHandler) Cancel(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	tx, err := h.SessionRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	booking, err := h.BookingRepo.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return domainErrJSON(c, err)
	}
	session, err := h.SessionRepo.GetForUpdateTx(ctx, tx, booking.SessionID)
	if err != nil {
		return domainErrJSON(c, err)
	}
	role := getRole(c)
	allowed := authz.CanViewOwned(role, callerID, booking.PlayerID) ||
		authz.CanViewSessionBookings(role, callerID, session.CoachID)
	if !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.BookingRepo.DeleteTx(ctx, tx, booking.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete booking"})
	}
	if err := h.SessionRepo.ReleaseSpotTx(ctx, tx, session.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to restore session spot"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	session.Release()
	_ = queue_publisher.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:        queue.BookingCancelled,
		BookingID:   booking.ID,
		PlayerID:    booking.PlayerID,
		SessionID:   session.ID,
		SessionName: session.Name,
		SessionDate: session.Date.Format(time.RFC3339),
		SpotsLeft:   session.SpotsLeft,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "booking cancelled for " + session.Name,
		"spots_left": session.SpotsLeft,
	})
}

// List handles GET /v1/bookings. Results are scoped by role: admins
// see everything, coaches the bookings of their own sessions, players
// and children their own bookings. Other roles get an empty list.
func (h *BookingHandler) List(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	role := getRole(c)
	var details []repository.BookingDetail
	switch {
	case authz.CanViewAllBookings(role):
		details, err = h.BookingRepo.ListAll(ctx)
	case role == authz.RoleCoach:
		details, err = h.BookingRepo.ListByCoach(ctx, callerID)
	case role == authz.RolePlayer || role == authz.RoleChild:
		details, err = h.BookingRepo.ListByPlayer(ctx, callerID)
	default:
		details = []repository.BookingDetail{}
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings_count": len(details),
		"bookings":       details,
	})
}

// MyBookings handles GET /v1/my-bookings. It returns the caller's
// bookings regardless of role.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.BookingRepo.ListByPlayer(c.Request().Context(), callerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings_count": len(details),
		"bookings":       details,
	})
}
