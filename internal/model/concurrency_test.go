package model

import (
	"sync"
	"testing"
	"time"
)

// Simulates many players racing for a bounded session. The mutex
// stands in for the database row lock the booking handler takes; with
// the counter mutated only under it, exactly capacity reservations may
// succeed and the counter can never go negative.
func TestConcurrentReservesNeverOversell(t *testing.T) {
	const (
		capacity = 5
		players  = 100
	)
	s := &Session{
		Name:      "Friday Night Match",
		Date:      time.Now().UTC().Add(48 * time.Hour),
		Capacity:  capacity,
		SpotsLeft: capacity,
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded int
	)
	wg.Add(players)
	for i := 0; i < players; i++ {
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if err := s.Reserve(); err == nil {
				succeeded++
			}
		}()
	}
	wg.Wait()

	if succeeded != capacity {
		t.Errorf("%d reservations succeeded, want exactly %d", succeeded, capacity)
	}
	if s.SpotsLeft != 0 {
		t.Errorf("SpotsLeft = %d, want 0", s.SpotsLeft)
	}
}

// Interleaved bookings and cancellations must keep the counter inside
// [0, capacity] at every step.
func TestInterleavedReserveReleaseStaysBounded(t *testing.T) {
	const capacity = 3
	s := &Session{
		Name:      "Recovery Block",
		Date:      time.Now().UTC().Add(time.Hour),
		Capacity:  capacity,
		SpotsLeft: capacity,
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	check := func() {
		if s.SpotsLeft > capacity {
			t.Errorf("SpotsLeft = %d exceeds capacity %d", s.SpotsLeft, capacity)
		}
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			mu.Lock()
			_ = s.Reserve()
			check()
			mu.Unlock()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			mu.Lock()
			s.Release()
			check()
			mu.Unlock()
		}
	}()
	wg.Wait()
}

// Two spenders racing for a bundle's final credit: one wins, one gets
// ErrNoCreditsRemaining.
func TestConcurrentLastCreditSingleWinner(t *testing.T) {
	b := &Bundle{
		SessionsIncluded: 1,
		ExpiryDate:       time.Now().UTC().AddDate(0, 1, 0),
	}
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded int
	)
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if err := b.UseCredit(time.Now().UTC()); err == nil {
				succeeded++
			}
		}()
	}
	wg.Wait()
	if succeeded != 1 {
		t.Errorf("%d credit uses succeeded, want exactly 1", succeeded)
	}
	if b.SessionsUsed != 1 {
		t.Errorf("SessionsUsed = %d, want 1", b.SessionsUsed)
	}
}
