// Package model defines the domain records persisted by the repository
// layer together with the business rules that act on them. This file
// declares the sentinel errors those rules return. All of them describe
// expected, recoverable rule violations that handlers translate into
// 4xx responses, with the exception of ErrCorruptCounter, which marks
// an invariant violation in stored data and must surface as a 500.
package model

import "errors"

// ErrSessionFull is returned when a session has no spots left at the
// moment a reservation is attempted.
var ErrSessionFull = errors.New("session is fully booked")

// ErrDuplicateBooking is returned when the player already holds a
// booking for the session.
var ErrDuplicateBooking = errors.New("player has already booked this session")

// ErrPastSession is returned when booking a session whose scheduled
// date has already elapsed.
var ErrPastSession = errors.New("cannot book past sessions")

// ErrNoCreditsRemaining is returned when a bundle has zero credits left.
var ErrNoCreditsRemaining = errors.New("no credits remaining in this bundle")

// ErrBundleExpired is returned when a bundle's expiry date has passed.
var ErrBundleExpired = errors.New("bundle has expired")

// ErrFreezeLimitReached is returned when a membership has already been
// frozen the maximum number of times.
var ErrFreezeLimitReached = errors.New("maximum freeze limit reached")

// ErrInvalidCode is returned when a discount code does not exist or is
// inactive.
var ErrInvalidCode = errors.New("invalid or inactive discount code")

// ErrInvalidAmount is returned when a non-positive monetary amount is
// supplied to the discount calculator.
var ErrInvalidAmount = errors.New("total amount must be positive")

// ErrCorruptCounter indicates that a stored counter violates its
// invariant (e.g. spots_left greater than capacity). No caller action
// can remedy it; it is never mapped to a business-rule response.
var ErrCorruptCounter = errors.New("stored counter violates invariant")
