package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session types accepted by the sessions table. These mirror the CHECK
// constraint on sessions.session_type.
const (
	SessionTypeGroup    = "group"
	SessionTypeOneOnOne = "1on1"
	SessionTypeEvent    = "event"
	SessionTypeRecovery = "recovery"
)

// Session represents a scheduled training session at the center. A
// session is created by an admin or coach with a fixed capacity;
// spots_left starts equal to capacity and is owned exclusively by the
// booking lifecycle; no other code path may mutate it.
//
// Fields:
//  ID              - primary key identifier.
//  Name            - display name of the session.
//  SessionType     - one of the SessionType* constants.
//  CoachID         - user assigned as coach (nullable).
//  Date            - when the session takes place (UTC).
//  DurationMinutes - length of the session.
//  Price           - price per spot, fixed-point decimal.
//  Capacity        - maximum simultaneous bookings, set once at creation.
//  SpotsLeft       - remaining bookable spots, 0 <= SpotsLeft <= Capacity.
//  CreatedAt       - creation timestamp.
//  UpdatedAt       - last update timestamp.
type Session struct {
	ID              uint64          `json:"id"`
	Name            string          `json:"name"`
	SessionType     string          `json:"session_type"`
	CoachID         *uint64         `json:"coach_id,omitempty"`
	Date            time.Time       `json:"date"`
	DurationMinutes uint32          `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Capacity        uint32          `json:"capacity"`
	SpotsLeft       uint32          `json:"spots_left"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsFull reports whether the session has no spots left.
func (s *Session) IsFull() bool { return s.SpotsLeft == 0 }

// HasStarted reports whether the session's scheduled date has elapsed
// relative to now.
func (s *Session) HasStarted(now time.Time) bool { return s.Date.Before(now) }

// Reserve takes one spot from the session. It fails with ErrSessionFull
// when no spots remain. A counter above capacity means the row was
// mutated outside the booking lifecycle and is reported as
// ErrCorruptCounter so callers can abort instead of compounding the
// damage.
func (s *Session) Reserve() error {
	if s.SpotsLeft > s.Capacity {
		return ErrCorruptCounter
	}
	if s.SpotsLeft == 0 {
		return ErrSessionFull
	}
	s.SpotsLeft--
	return nil
}

// Release returns one spot to the session. The increment is clamped at
// capacity: an unmatched release must never push spots_left past the
// fixed maximum.
func (s *Session) Release() {
	if s.SpotsLeft < s.Capacity {
		s.SpotsLeft++
	}
}

// ValidSessionType reports whether t is one of the accepted session types.
func ValidSessionType(t string) bool {
	switch t {
	case SessionTypeGroup, SessionTypeOneOnOne, SessionTypeEvent, SessionTypeRecovery:
		return true
	}
	return false
}
