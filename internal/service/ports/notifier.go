package ports

import (
	"context"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// BookingNotifier publishes lifecycle events after a booking mutation
// has committed. Publishing is best effort: implementations log and
// swallow failures, they never undo the committed write.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyStatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus)
}
