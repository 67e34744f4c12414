package model

import (
	"errors"
	"testing"
	"time"
)

var today = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func TestBundleUseCredit(t *testing.T) {
	tests := []struct {
		name     string
		included uint32
		used     uint32
		expiry   time.Time
		wantErr  error
		wantUsed uint32
	}{
		{"consumes a credit", 10, 3, today.AddDate(0, 1, 0), nil, 4},
		{"last credit", 10, 9, today.AddDate(0, 1, 0), nil, 10},
		{"exhausted", 10, 10, today.AddDate(0, 1, 0), ErrNoCreditsRemaining, 10},
		{"expired yesterday", 10, 3, today.AddDate(0, 0, -1), ErrBundleExpired, 3},
		{"expiring today still usable", 10, 3, today, nil, 4},
		// the credit check runs first: an exhausted expired bundle
		// reports no credits, not expiry
		{"exhausted and expired", 10, 10, today.AddDate(0, 0, -5), ErrNoCreditsRemaining, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Bundle{SessionsIncluded: tt.included, SessionsUsed: tt.used, ExpiryDate: tt.expiry}
			err := b.UseCredit(today)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UseCredit() error = %v, want %v", err, tt.wantErr)
			}
			if b.SessionsUsed != tt.wantUsed {
				t.Errorf("SessionsUsed = %d, want %d", b.SessionsUsed, tt.wantUsed)
			}
		})
	}
}

func TestBundleCreditsLeftSigned(t *testing.T) {
	b := &Bundle{SessionsIncluded: 5, SessionsUsed: 7}
	if got := b.CreditsLeft(); got != -2 {
		t.Errorf("CreditsLeft() = %d, want -2 (overconsumed rows must read negative)", got)
	}
	if err := b.UseCredit(today.AddDate(0, 1, 0)); !errors.Is(err, ErrNoCreditsRemaining) {
		t.Errorf("UseCredit() on negative balance = %v, want ErrNoCreditsRemaining", err)
	}
}

func TestBundleIsExpiredIgnoresTimeOfDay(t *testing.T) {
	// expiry stored at midnight, checked late in the evening of the
	// same day: still not expired
	b := &Bundle{SessionsIncluded: 1, ExpiryDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)}
	lateToday := time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC)
	if b.IsExpired(lateToday) {
		t.Error("IsExpired() = true on the expiry day itself")
	}
	if !b.IsExpired(lateToday.AddDate(0, 0, 1)) {
		t.Error("IsExpired() = false the day after expiry")
	}
}
