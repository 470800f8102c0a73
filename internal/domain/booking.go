package domain

import "time"

// BookingStatus enumerates the lifecycle states of a booking. The set
// is closed: any edge not present in the transition table below is
// rejected with ErrInvalidTransition.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// transitions maps each status to the statuses reachable from it.
// Cancelled is terminal; confirmed can only move to cancelled.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusCancelled: {},
}

// Valid reports whether s is a known status value.
func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> target exists in the
// transition table.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// TransitionSources returns every status from which target is
// reachable. Conditional status updates use this set as their guard so
// that a transition decided on a stale read still lands on a legal
// edge, or fails, under the row lock.
func TransitionSources(target BookingStatus) []BookingStatus {
	var from []BookingStatus
	for s, targets := range transitions {
		for _, t := range targets {
			if t == target {
				from = append(from, s)
			}
		}
	}
	return from
}

// Booking records one customer's reservation against a travel
// package. TotalCents is captured at reservation time from the
// package's unit price and never recomputed; later price changes do
// not touch existing bookings.
//
// Fields:
//  ID           – primary key identifier, assigned at creation.
//  PackageID    – package being booked.
//  ActorID      – user who made the booking.
//  PartySize    – number of seats the booking consumes.
//  TotalCents   – party size × unit price at booking time, in cents.
//  Status       – lifecycle state (pending, confirmed, cancelled).
//  CustomerNote – free text supplied by the customer at booking time.
//  OperatorNote – text written by admins, visible to the customer.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Booking struct {
	ID           uint64        `json:"id"`
	PackageID    uint64        `json:"package_id"`
	ActorID      uint64        `json:"actor_id"`
	PartySize    uint32        `json:"party_size"`
	TotalCents   uint32        `json:"total_cents"`
	Status       BookingStatus `json:"status"`
	CustomerNote string        `json:"customer_note,omitempty"`
	OperatorNote string        `json:"operator_note,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
