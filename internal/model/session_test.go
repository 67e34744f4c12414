package model

import (
	"errors"
	"testing"
	"time"
)

func futureSession(capacity, spotsLeft uint32) *Session {
	return &Session{
		ID:          1,
		Name:        "U12 Group Training",
		SessionType: SessionTypeGroup,
		Date:        time.Now().UTC().Add(24 * time.Hour),
		Capacity:    capacity,
		SpotsLeft:   spotsLeft,
	}
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name      string
		capacity  uint32
		spotsLeft uint32
		wantErr   error
		wantSpots uint32
	}{
		{"takes a spot", 10, 10, nil, 9},
		{"takes the last spot", 10, 1, nil, 0},
		{"full session", 10, 0, ErrSessionFull, 0},
		{"corrupt counter", 10, 11, ErrCorruptCounter, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := futureSession(tt.capacity, tt.spotsLeft)
			err := s.Reserve()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Reserve() error = %v, want %v", err, tt.wantErr)
			}
			if s.SpotsLeft != tt.wantSpots {
				t.Errorf("SpotsLeft = %d, want %d", s.SpotsLeft, tt.wantSpots)
			}
		})
	}
}

func TestReleaseClampsAtCapacity(t *testing.T) {
	s := futureSession(10, 10)
	s.Release()
	if s.SpotsLeft != 10 {
		t.Errorf("SpotsLeft = %d, want 10 (release at capacity must not overflow)", s.SpotsLeft)
	}

	s.SpotsLeft = 4
	s.Release()
	if s.SpotsLeft != 5 {
		t.Errorf("SpotsLeft = %d, want 5", s.SpotsLeft)
	}
}

// A capacity-one session must be rebookable after its only booking is
// cancelled.
func TestCapacityOneRebookCycle(t *testing.T) {
	s := futureSession(1, 1)

	if err := s.Reserve(); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if err := s.Reserve(); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("second booking error = %v, want ErrSessionFull", err)
	}
	s.Release()
	if err := s.Reserve(); err != nil {
		t.Fatalf("rebooking after cancel failed: %v", err)
	}
	if s.SpotsLeft != 0 {
		t.Errorf("SpotsLeft = %d, want 0", s.SpotsLeft)
	}
}

func TestValidateBooking(t *testing.T) {
	now := time.Now().UTC()
	past := futureSession(10, 5)
	past.Date = now.Add(-time.Hour)

	fullAndBooked := futureSession(10, 0)

	tests := []struct {
		name    string
		session *Session
		booked  bool
		want    error
	}{
		{"ok", futureSession(10, 5), false, nil},
		{"full", futureSession(10, 0), false, ErrSessionFull},
		{"duplicate", futureSession(10, 5), true, ErrDuplicateBooking},
		{"past", past, false, ErrPastSession},
		// capacity is checked before the duplicate: a full session
		// reports full even to a player who already booked it
		{"full before duplicate", fullAndBooked, true, ErrSessionFull},
		{"corrupt counter", futureSession(10, 11), false, ErrCorruptCounter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBooking(tt.session, tt.booked, now); !errors.Is(err, tt.want) {
				t.Errorf("ValidateBooking() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateBookingDuplicateBeforePast(t *testing.T) {
	now := time.Now().UTC()
	s := futureSession(10, 5)
	s.Date = now.Add(-time.Hour)
	if err := ValidateBooking(s, true, now); !errors.Is(err, ErrDuplicateBooking) {
		t.Errorf("ValidateBooking() = %v, want ErrDuplicateBooking (duplicate outranks past)", err)
	}
}

func TestValidSessionType(t *testing.T) {
	for _, typ := range []string{SessionTypeGroup, SessionTypeOneOnOne, SessionTypeEvent, SessionTypeRecovery} {
		if !ValidSessionType(typ) {
			t.Errorf("ValidSessionType(%q) = false, want true", typ)
		}
	}
	for _, typ := range []string{"", "GROUP", "match", "one-on-one"} {
		if ValidSessionType(typ) {
			t.Errorf("ValidSessionType(%q) = true, want false", typ)
		}
	}
}
