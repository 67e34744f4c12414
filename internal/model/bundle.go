package model

import "time"

// Bundle is a prepaid pack of session credits owned by one user.
// sessions_used is owned exclusively by UseCredit; nothing else may
// mutate it.
//
// Fields:
//  ID               - primary key identifier.
//  OwnerID          - user who owns the bundle.
//  SessionsIncluded - credits purchased, fixed at creation.
//  SessionsUsed     - credits consumed so far, starts at 0.
//  ExpiryDate       - last calendar day (UTC) the bundle is usable.
type Bundle struct {
	ID               uint64    `json:"id"`
	OwnerID          uint64    `json:"owner_id"`
	SessionsIncluded uint32    `json:"sessions_included"`
	SessionsUsed     uint32    `json:"sessions_used"`
	ExpiryDate       time.Time `json:"expiry_date"`
}

// CreditsLeft returns included minus used. The result is signed:
// direct manipulation of the row can drive it negative, and reads must
// not mask that, but UseCredit itself never pushes it below zero.
func (b *Bundle) CreditsLeft() int64 {
	return int64(b.SessionsIncluded) - int64(b.SessionsUsed)
}

// IsExpired reports whether the bundle's expiry date lies strictly
// before today's date. A bundle expiring today is still usable.
func (b *Bundle) IsExpired(today time.Time) bool {
	return dateOf(b.ExpiryDate).Before(dateOf(today))
}

// UseCredit consumes one credit. The credits-remaining check runs
// before the expiry check; both failures leave the bundle unchanged.
func (b *Bundle) UseCredit(today time.Time) error {
	if b.CreditsLeft() <= 0 {
		return ErrNoCreditsRemaining
	}
	if b.IsExpired(today) {
		return ErrBundleExpired
	}
	b.SessionsUsed++
	return nil
}

// dateOf truncates a timestamp to its UTC calendar day.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
