package model

import (
	"errors"
	"testing"
)

func TestMembershipFreezeLifecycle(t *testing.T) {
	m := &Membership{Active: true}

	for i := 1; i <= MaxFreezes; i++ {
		if err := m.Freeze(); err != nil {
			t.Fatalf("freeze %d failed: %v", i, err)
		}
		if m.Active {
			t.Fatalf("freeze %d left membership active", i)
		}
		if m.FreezeCount != uint32(i) {
			t.Fatalf("FreezeCount = %d after freeze %d", m.FreezeCount, i)
		}
		m.Unfreeze()
		if !m.Active {
			t.Fatalf("unfreeze %d left membership frozen", i)
		}
	}

	if err := m.Freeze(); !errors.Is(err, ErrFreezeLimitReached) {
		t.Fatalf("freeze past limit = %v, want ErrFreezeLimitReached", err)
	}
	if !m.Active || m.FreezeCount != MaxFreezes {
		t.Errorf("failed freeze mutated state: active=%v count=%d", m.Active, m.FreezeCount)
	}
}

// Freezing an already frozen membership is allowed and still consumes
// a freeze; only the counter gates the transition.
func TestMembershipRepeatedFreezeCounts(t *testing.T) {
	m := &Membership{Active: true}
	for i := 1; i <= MaxFreezes; i++ {
		if err := m.Freeze(); err != nil {
			t.Fatalf("freeze %d failed: %v", i, err)
		}
	}
	if m.FreezeCount != MaxFreezes {
		t.Errorf("FreezeCount = %d, want %d", m.FreezeCount, MaxFreezes)
	}
	if err := m.Freeze(); !errors.Is(err, ErrFreezeLimitReached) {
		t.Errorf("freeze past limit = %v, want ErrFreezeLimitReached", err)
	}
}

func TestMembershipUnfreezeKeepsCounter(t *testing.T) {
	m := &Membership{Active: true}
	_ = m.Freeze()
	_ = m.Freeze()
	m.Unfreeze()
	if m.FreezeCount != 2 {
		t.Errorf("FreezeCount = %d after unfreeze, want 2", m.FreezeCount)
	}
	// unfreezing an active membership is a no-op, not an error
	m.Unfreeze()
	if !m.Active {
		t.Error("double unfreeze deactivated the membership")
	}
}
