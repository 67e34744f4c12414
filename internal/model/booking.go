package model

import "time"

// BookingStatusConfirmed is the only status a stored booking ever
// carries; cancellation deletes the row rather than transitioning the
// status. The column exists so a cancelled state can be introduced
// later without a schema change.
const BookingStatusConfirmed = "confirmed"

// Booking links one player to one session. At most one booking may
// exist per (player, session) pair; the bookings table enforces this
// with a unique key and the create path checks it inside the same
// transaction that reserves capacity.
//
// Fields:
//  ID        - primary key identifier.
//  PlayerID  - user who booked the spot.
//  SessionID - session being booked.
//  Status    - always "confirmed" (see BookingStatusConfirmed).
//  BookedAt  - creation timestamp.
type Booking struct {
	ID        uint64    `json:"id"`
	PlayerID  uint64    `json:"player_id"`
	SessionID uint64    `json:"session_id"`
	Status    string    `json:"status"`
	BookedAt  time.Time `json:"booked_at"`
}

// ValidateBooking runs the booking-creation checks against a locked
// session row. The order is fixed: capacity first, then duplicate,
// then past date. Callers must hold the session row lock so the
// spots_left value cannot go stale between check and write.
func ValidateBooking(s *Session, alreadyBooked bool, now time.Time) error {
	if s.SpotsLeft > s.Capacity {
		return ErrCorruptCounter
	}
	if s.IsFull() {
		return ErrSessionFull
	}
	if alreadyBooked {
		return ErrDuplicateBooking
	}
	if s.HasStarted(now) {
		return ErrPastSession
	}
	return nil
}
