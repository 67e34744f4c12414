// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the booking.events queue.
const (
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent is published whenever a booking is confirmed or
// cancelled. It carries enough context for downstream consumers to
// log, notify, or feed analytics without querying the primary
// database.
type BookingEvent struct {
	Kind        string `json:"kind"`
	BookingID   uint64 `json:"booking_id"`
	PlayerID    uint64 `json:"player_id"`
	SessionID   uint64 `json:"session_id"`
	SessionName string `json:"session_name"`
	SessionDate string `json:"session_date"`
	SpotsLeft   uint32 `json:"spots_left"`
	OccurredAt  string `json:"occurred_at"`
}
