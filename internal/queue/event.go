// Package queue defines the booking lifecycle messages exchanged over
// the broker, the publisher used by the service layer and the
// background consumer that records events.
package queue

// Event kinds carried in the Type field of BookingEvent.
const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is published whenever a booking is created or changes
// status. It carries enough for downstream consumers to log or notify
// without querying the primary database. FromStatus is empty for
// creation events.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  uint64 `json:"booking_id"`
	PackageID  uint64 `json:"package_id"`
	ActorID    uint64 `json:"actor_id"`
	PartySize  uint32 `json:"party_size"`
	TotalCents uint32 `json:"total_cents"`
	Status     string `json:"status"`
	FromStatus string `json:"from_status,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
