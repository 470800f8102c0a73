package domain

import "time"

// TravelPackage represents a bookable trip offer as stored in the
// `packages` table. Capacity counts the unclaimed seats remaining on
// the package; it is mutated only by the reservation engine
// (decrement) and the cancellation compensation step (increment).
// Admin catalog edits may reset it, but never through the booking
// path.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title of the trip.
//  Description – free-text description.
//  City        – destination city.
//  Country     – destination country.
//  PriceCents  – price per traveller in cents.
//  Capacity    – unclaimed seats remaining (never negative).
//  StartsOn    – first day of the trip.
//  EndsOn      – last day of the trip.
//  Days        – trip length in days.
//  Hotel       – hotel name or booking reference.
//  IsActive    – soft-retire flag; retired packages cannot be booked.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type TravelPackage struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PriceCents  uint32    `json:"price_cents"`
	Capacity    uint32    `json:"capacity"`
	StartsOn    time.Time `json:"starts_on"`
	EndsOn      time.Time `json:"ends_on"`
	Days        uint32    `json:"days"`
	Hotel       string    `json:"hotel"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
