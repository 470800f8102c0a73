// Package service holds the booking engine: reservation against
// package capacity, the status lifecycle, and admin overrides. All
// coordination between concurrent requests is pushed into the store's
// transactions; the service itself keeps no shared mutable state.
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/viaggiapp/travel-booking/internal/domain"
	"github.com/viaggiapp/travel-booking/internal/service/ports"
)

type BookingService struct {
	store    ports.BookingStore
	notifier ports.BookingNotifier
}

func NewBookingService(store ports.BookingStore, notifier ports.BookingNotifier) *BookingService {
	return &BookingService{store: store, notifier: notifier}
}

// Reserve turns a booking request into a committed pending booking
// with the package's capacity durably reduced, or fails with no side
// effects. Capacity checking and decrementing happen inside a single
// store transaction, so concurrent reservations on the same package
// can never jointly consume more capacity than existed.
func (s *BookingService) Reserve(ctx context.Context, packageID uint64, actor domain.Actor, partySize uint32, note string) (*domain.Booking, error) {
	if partySize == 0 {
		return nil, fmt.Errorf("reserve package %d: %w", packageID, domain.ErrInvalidPartySize)
	}

	booking, err := s.store.CreateReserving(ctx, &domain.Booking{
		PackageID:    packageID,
		ActorID:      actor.ID,
		PartySize:    partySize,
		Status:       domain.StatusPending,
		CustomerNote: note,
	})
	if err != nil {
		return nil, fmt.Errorf("reserve package %d: %w", packageID, err)
	}

	log.Printf("booking: reserved booking=%d package=%d actor=%d party=%d total=%d",
		booking.ID, booking.PackageID, booking.ActorID, booking.PartySize, booking.TotalCents)
	go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking)
	return booking, nil
}

// Transition moves a booking along the status state machine on behalf
// of an actor. Confirming is admin only; cancelling is open to the
// owning customer and admins. Entering cancelled releases the
// booking's seats back to the package, exactly once: the store
// re-verifies the source status under a row lock, so a second cancel
// fails with ErrInvalidTransition instead of compensating twice.
func (s *BookingService) Transition(ctx context.Context, bookingID uint64, actor domain.Actor, target domain.BookingStatus) (*domain.Booking, error) {
	if !target.Valid() || target == domain.StatusPending {
		// pending is the initial state only; nothing transitions back into it.
		return nil, fmt.Errorf("transition booking %d: %w", bookingID, domain.ErrInvalidTransition)
	}

	current, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("transition booking %d: %w", bookingID, err)
	}
	if !current.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("transition booking %d from %s to %s: %w",
			bookingID, current.Status, target, domain.ErrInvalidTransition)
	}
	if err := authorizeTransition(current, actor, target); err != nil {
		return nil, fmt.Errorf("transition booking %d: %w", bookingID, err)
	}

	// The from-set covers every legal source of the target edge rather
	// than just the status read above: if another actor moved the
	// booking meanwhile, the transition still lands on a legal edge or
	// fails under the store's lock.
	release := target == domain.StatusCancelled
	updated, err := s.store.UpdateStatus(ctx, bookingID, domain.TransitionSources(target), target, release)
	if err != nil {
		return nil, fmt.Errorf("transition booking %d: %w", bookingID, err)
	}

	log.Printf("booking: transition booking=%d %s->%s actor=%d release=%t",
		updated.ID, current.Status, updated.Status, actor.ID, release)
	go s.notifier.NotifyStatusChanged(context.WithoutCancel(ctx), updated, current.Status)
	return updated, nil
}

// SetOperatorNote attaches or replaces the operator note on a
// booking. Admin only; the note is visible to the owning customer.
func (s *BookingService) SetOperatorNote(ctx context.Context, bookingID uint64, actor domain.Actor, note string) (*domain.Booking, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("set note on booking %d: %w", bookingID, domain.ErrNotAuthorized)
	}
	if _, err := s.store.GetByID(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("set note on booking %d: %w", bookingID, err)
	}
	updated, err := s.store.SetOperatorNote(ctx, bookingID, note)
	if err != nil {
		return nil, fmt.Errorf("set note on booking %d: %w", bookingID, err)
	}
	return updated, nil
}

// authorizeTransition enforces who may take each edge. It is only
// called for edges the transition table allows.
func authorizeTransition(b *domain.Booking, actor domain.Actor, target domain.BookingStatus) error {
	switch target {
	case domain.StatusConfirmed:
		if !actor.IsAdmin {
			return domain.ErrNotAuthorized
		}
	case domain.StatusCancelled:
		if !actor.IsAdmin && actor.ID != b.ActorID {
			return domain.ErrNotAuthorized
		}
	}
	return nil
}
