// Package ports declares the interfaces the booking service depends
// on, so the engine can be exercised against in-memory fakes while
// production wiring supplies the MySQL repositories.
package ports

import (
	"context"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// BookingStore is the transactional surface the reservation engine
// and lifecycle manager need from the data store. Each method is a
// single atomic unit of work: either all of its writes commit or none
// do. Implementations must return the domain error sentinels
// (ErrPackageNotFound, ErrInsufficientCapacity, ErrBookingNotFound,
// ErrInvalidTransition, ErrStorageUnavailable).
type BookingStore interface {
	// GetByID returns the booking or ErrBookingNotFound.
	GetByID(ctx context.Context, id uint64) (*domain.Booking, error)

	// CreateReserving atomically checks and decrements the package's
	// capacity by b.PartySize and inserts the booking in state
	// pending. TotalCents is computed from the unit price read within
	// the same transaction. A plain read-then-write is not a valid
	// implementation: the capacity guard must be evaluated by the
	// store itself.
	CreateReserving(ctx context.Context, b *domain.Booking) (*domain.Booking, error)

	// UpdateStatus atomically moves the booking to `to`, provided its
	// current status is in `from`; otherwise ErrInvalidTransition.
	// When releaseCapacity is true the booking's party size is added
	// back to the package in the same transaction.
	UpdateStatus(ctx context.Context, id uint64, from []domain.BookingStatus, to domain.BookingStatus, releaseCapacity bool) (*domain.Booking, error)

	// SetOperatorNote overwrites the operator note on the booking.
	SetOperatorNote(ctx context.Context, id uint64, note string) (*domain.Booking, error)
}
