package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

var (
	customer = domain.Actor{ID: 7}
	stranger = domain.Actor{ID: 8}
	operator = domain.Actor{ID: 1, IsAdmin: true}
)

func newService(t *testing.T) (*BookingService, *fakeStore, *fakeNotifier) {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return NewBookingService(store, notifier), store, notifier
}

func TestReserve(t *testing.T) {
	svc, store, notifier := newService(t)
	store.addPackage(1, 3, 10000, true)

	b, err := svc.Reserve(context.Background(), 1, customer, 2, "window seats please")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, uint32(2), b.PartySize)
	assert.Equal(t, uint32(20000), b.TotalCents)
	assert.Equal(t, customer.ID, b.ActorID)
	assert.Equal(t, "window seats please", b.CustomerNote)
	assert.Equal(t, uint32(1), store.capacityOf(1))

	// notification is fired from a goroutine
	time.Sleep(50 * time.Millisecond)
	notifier.mu.Lock()
	assert.Equal(t, 1, notifier.created)
	notifier.mu.Unlock()
}

func TestReserveInvalidPartySize(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)

	_, err := svc.Reserve(context.Background(), 1, customer, 0, "")
	require.ErrorIs(t, err, domain.ErrInvalidPartySize)
	assert.Equal(t, 0, store.bookingCount())
	assert.Equal(t, uint32(3), store.capacityOf(1))
}

func TestReservePackageNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Reserve(context.Background(), 99, customer, 1, "")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestReserveRetiredPackage(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, false)

	// a retired package is invisible to reservations even with capacity left
	_, err := svc.Reserve(context.Background(), 1, customer, 1, "")
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Equal(t, uint32(3), store.capacityOf(1))
}

func TestReserveInsufficientCapacity(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 1, 10000, true)

	_, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	// failed reservation leaves nothing behind
	assert.Equal(t, 0, store.bookingCount())
	assert.Equal(t, uint32(1), store.capacityOf(1))
}

func TestReserveStorageFailure(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	store.failNext = fmt.Errorf("insert booking: %w: connection reset", domain.ErrStorageUnavailable)

	_, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, 0, store.bookingCount())
	assert.Equal(t, uint32(3), store.capacityOf(1))
}

// TestReserveNoOversell hammers one package from many goroutines and
// checks that exactly capacity-many seats were ever sold.
func TestReserveNoOversell(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 5, 10000, true)

	const workers = 100
	var (
		wg       sync.WaitGroup
		success  int64
		soldOut  int64
		unwanted int64
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(actorID uint64) {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), 1, domain.Actor{ID: actorID}, 1, "")
			switch {
			case err == nil:
				atomic.AddInt64(&success, 1)
			case errors.Is(err, domain.ErrInsufficientCapacity):
				atomic.AddInt64(&soldOut, 1)
			default:
				atomic.AddInt64(&unwanted, 1)
			}
		}(uint64(100 + i))
	}
	wg.Wait()

	assert.Equal(t, int64(5), success)
	assert.Equal(t, int64(workers-5), soldOut)
	assert.Equal(t, int64(0), unwanted)
	assert.Equal(t, uint32(0), store.capacityOf(1))
	assert.Equal(t, 5, store.bookingCount())
}

func TestConfirmRequiresAdmin(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), b.ID, customer, domain.StatusConfirmed)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	updated, err := svc.Transition(context.Background(), b.ID, operator, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	// confirming does not touch capacity
	assert.Equal(t, uint32(1), store.capacityOf(1))
}

func TestCancelByOwnerReleasesCapacity(t *testing.T) {
	svc, store, notifier := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)
	require.Equal(t, uint32(1), store.capacityOf(1))

	updated, err := svc.Transition(context.Background(), b.ID, customer, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, uint32(3), store.capacityOf(1))

	time.Sleep(50 * time.Millisecond)
	notifier.mu.Lock()
	assert.Equal(t, 1, notifier.changed)
	notifier.mu.Unlock()
}

func TestCancelByStrangerForbidden(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), b.ID, stranger, domain.StatusCancelled)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.Equal(t, uint32(1), store.capacityOf(1))
}

func TestCancelConfirmedByAdmin(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), b.ID, operator, domain.StatusConfirmed)
	require.NoError(t, err)

	updated, err := svc.Transition(context.Background(), b.ID, operator, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.Equal(t, uint32(3), store.capacityOf(1))
}

// TestCancelCompensatesOnce cancels twice and verifies the seats come
// back exactly once.
func TestCancelCompensatesOnce(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), b.ID, customer, domain.StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, uint32(3), store.capacityOf(1))

	_, err = svc.Transition(context.Background(), b.ID, customer, domain.StatusCancelled)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, uint32(3), store.capacityOf(1))
}

func TestCancelledIsTerminal(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), b.ID, customer, domain.StatusCancelled)
	require.NoError(t, err)

	// not even an admin can leave cancelled
	_, err = svc.Transition(context.Background(), b.ID, operator, domain.StatusConfirmed)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionToPendingRejected(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), b.ID, operator, domain.StatusConfirmed)
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), b.ID, operator, domain.StatusPending)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Transition(context.Background(), b.ID, operator, domain.BookingStatus("refunded"))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTransitionBookingNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Transition(context.Background(), 404, operator, domain.StatusConfirmed)
	require.ErrorIs(t, err, domain.ErrBookingNotFound)
}

// TestPriceCapturedAtReservation checks that a later catalog price
// change does not touch an existing booking's total.
func TestPriceCapturedAtReservation(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)
	require.Equal(t, uint32(20000), b.TotalCents)

	store.setPrice(1, 99999)

	got, err := store.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(20000), got.TotalCents)

	// and the new price applies to new bookings only
	b2, err := svc.Reserve(context.Background(), 1, stranger, 1, "")
	require.NoError(t, err)
	assert.Equal(t, uint32(99999), b2.TotalCents)
}

func TestSetOperatorNote(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)
	b, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)

	_, err = svc.SetOperatorNote(context.Background(), b.ID, customer, "upgraded room")
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	updated, err := svc.SetOperatorNote(context.Background(), b.ID, operator, "upgraded room")
	require.NoError(t, err)
	assert.Equal(t, "upgraded room", updated.OperatorNote)

	_, err = svc.SetOperatorNote(context.Background(), 404, operator, "x")
	require.ErrorIs(t, err, domain.ErrBookingNotFound)
}

// TestReserveCancelReserve walks the storefront flow on a package with
// three seats: a party of two fills it past a second party of two,
// cancelling frees the seats, and the second party can rebook.
func TestReserveCancelReserve(t *testing.T) {
	svc, store, _ := newService(t)
	store.addPackage(1, 3, 10000, true)

	first, err := svc.Reserve(context.Background(), 1, customer, 2, "")
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), 1, stranger, 2, "")
	require.ErrorIs(t, err, domain.ErrInsufficientCapacity)

	_, err = svc.Transition(context.Background(), first.ID, customer, domain.StatusCancelled)
	require.NoError(t, err)

	second, err := svc.Reserve(context.Background(), 1, stranger, 2, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, second.Status)
	assert.Equal(t, uint32(1), store.capacityOf(1))
}
