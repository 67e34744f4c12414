package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/smartfc/football-center/internal/model"
)

// BookingRepo provides persistence for bookings. Creation and
// cancellation always run inside a transaction owned by the handler so
// the paired spots_left mutation on the session commits or rolls back
// with the booking row.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// ExistsForPlayerTx reports whether the player already holds a booking
// for the session. It runs inside the caller's transaction, after the
// session row has been locked, so the answer cannot go stale before
// the insert.
func (r *BookingRepo) ExistsForPlayerTx(ctx context.Context, tx *sql.Tx, playerID, sessionID uint64) (bool, error) {
	var exists bool
	err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE player_id = ? AND session_id = ?)`,
		playerID, sessionID).Scan(&exists)
	return exists, err
}

// CreateTx inserts a booking within the caller's transaction and
// populates the generated ID and DB-default fields on the record.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (player_id, session_id, status) VALUES (?, ?, ?)`,
		b.PlayerID, b.SessionID, model.BookingStatusConfirmed)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		`SELECT id, player_id, session_id, status, booked_at FROM bookings WHERE id = ?`, b.ID).
		Scan(&b.ID, &b.PlayerID, &b.SessionID, &b.Status, &b.BookedAt)
}

// GetByID retrieves a booking by its ID. Returns ErrNotFound when no
// matching row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRowContext(ctx,
		`SELECT id, player_id, session_id, status, booked_at FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.PlayerID, &b.SessionID, &b.Status, &b.BookedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetForUpdateTx loads a booking under a row lock inside the caller's
// transaction. The cancel path locks the booking before releasing
// capacity so two concurrent cancels of the same booking cannot both
// increment spots_left.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := tx.QueryRowContext(ctx,
		`SELECT id, player_id, session_id, status, booked_at FROM bookings WHERE id = ? FOR UPDATE`, id).
		Scan(&b.ID, &b.PlayerID, &b.SessionID, &b.Status, &b.BookedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// DeleteTx removes a booking row within the caller's transaction.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}

// BookingDetail carries a booking together with the player and session
// columns the listing endpoints display.
type BookingDetail struct {
	ID          uint64    `json:"id"`
	PlayerID    uint64    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	SessionID   uint64    `json:"session_id"`
	SessionName string    `json:"session_name"`
	SessionDate time.Time `json:"session_date"`
	Status      string    `json:"status"`
	BookedAt    time.Time `json:"booked_at"`
}

const bookingDetailQ = `SELECT b.id, b.player_id,
                               TRIM(CONCAT(u.first_name, ' ', u.last_name)),
                               b.session_id, s.name, s.date, b.status, b.booked_at
                        FROM bookings b
                        JOIN users u ON u.id = b.player_id
                        JOIN sessions s ON s.id = b.session_id`

func (r *BookingRepo) listDetails(ctx context.Context, q string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.PlayerID, &d.PlayerName,
			&d.SessionID, &d.SessionName, &d.SessionDate, &d.Status, &d.BookedAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListByPlayer returns the player's bookings, newest first.
func (r *BookingRepo) ListByPlayer(ctx context.Context, playerID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQ+` WHERE b.player_id = ? ORDER BY b.booked_at DESC`, playerID)
}

// ListBySession returns all bookings for one session, newest first.
func (r *BookingRepo) ListBySession(ctx context.Context, sessionID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQ+` WHERE b.session_id = ? ORDER BY b.booked_at DESC`, sessionID)
}

// ListByCoach returns bookings for every session assigned to the
// coach, newest first. Used for the coach's scoped listing.
func (r *BookingRepo) ListByCoach(ctx context.Context, coachID uint64) ([]BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQ+` WHERE s.coach_id = ? ORDER BY b.booked_at DESC`, coachID)
}

// ListAll returns every booking, newest first. Admin only.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	return r.listDetails(ctx, bookingDetailQ+` ORDER BY b.booked_at DESC`)
}
