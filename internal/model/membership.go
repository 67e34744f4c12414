package model

import "time"

// MaxFreezes is the hard ceiling on how many times a membership may be
// frozen over its lifetime.
const MaxFreezes = 3

// Membership is a recurring plan owned by one user. It is a two-state
// machine: Active (active=true) and Frozen (active=false). Freezing is
// bounded by MaxFreezes; unfreezing is unconditional and does not
// touch the counter.
//
// Fields:
//  ID          - primary key identifier.
//  OwnerID     - user who owns the membership.
//  StartDate   - when the membership began.
//  Active      - true when Active, false when Frozen.
//  PlanName    - commercial plan label.
//  RenewalDate - next renewal day.
//  FreezeCount - lifetime freeze count, 0..MaxFreezes.
type Membership struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	StartDate   time.Time `json:"start_date"`
	Active      bool      `json:"active"`
	PlanName    string    `json:"plan_name"`
	RenewalDate time.Time `json:"renewal_date"`
	FreezeCount uint32    `json:"freeze_count"`
}

// Freeze moves the membership to Frozen and increments the counter.
// Only the counter gates the transition: freezing an already-frozen
// membership still counts, up to MaxFreezes. On failure the counter is
// left unchanged.
func (m *Membership) Freeze() error {
	if m.FreezeCount >= MaxFreezes {
		return ErrFreezeLimitReached
	}
	m.Active = false
	m.FreezeCount++
	return nil
}

// Unfreeze returns the membership to Active from any state. The freeze
// counter is deliberately not reset.
func (m *Membership) Unfreeze() {
	m.Active = true
}
