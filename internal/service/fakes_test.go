package service

import (
	"context"
	"sync"
	"time"

	"github.com/viaggiapp/travel-booking/internal/domain"
)

// fakePackage is the slice of package state the booking engine cares
// about: capacity, unit price and the retired flag.
type fakePackage struct {
	capacity uint32
	price    uint32
	active   bool
}

// fakeStore is an in-memory BookingStore with the same atomicity
// contract as the MySQL implementation: every method takes the store
// lock for its whole critical section, so the capacity guard and the
// writes it protects are indivisible even under goroutine contention.
type fakeStore struct {
	mu       sync.Mutex
	packages map[uint64]*fakePackage
	bookings map[uint64]*domain.Booking
	nextID   uint64
	failNext error // when set, the next mutating call fails with it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		packages: make(map[uint64]*fakePackage),
		bookings: make(map[uint64]*domain.Booking),
	}
}

func (s *fakeStore) addPackage(id uint64, capacity, price uint32, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[id] = &fakePackage{capacity: capacity, price: price, active: active}
}

func (s *fakeStore) setPrice(id uint64, price uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packages[id].price = price
}

func (s *fakeStore) capacityOf(id uint64) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.packages[id].capacity
}

func (s *fakeStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *fakeStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *fakeStore) GetByID(_ context.Context, id uint64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) CreateReserving(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	p, ok := s.packages[b.PackageID]
	if !ok || !p.active {
		return nil, domain.ErrPackageNotFound
	}
	if p.capacity < b.PartySize {
		return nil, domain.ErrInsufficientCapacity
	}
	p.capacity -= b.PartySize

	s.nextID++
	now := time.Now().UTC()
	created := &domain.Booking{
		ID:           s.nextID,
		PackageID:    b.PackageID,
		ActorID:      b.ActorID,
		PartySize:    b.PartySize,
		TotalCents:   p.price * b.PartySize,
		Status:       domain.StatusPending,
		CustomerNote: b.CustomerNote,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.bookings[created.ID] = created
	cp := *created
	return &cp, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uint64, from []domain.BookingStatus, to domain.BookingStatus, releaseCapacity bool) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	allowed := false
	for _, f := range from {
		if b.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrInvalidTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	if releaseCapacity {
		s.packages[b.PackageID].capacity += b.PartySize
	}
	cp := *b
	return &cp, nil
}

func (s *fakeStore) SetOperatorNote(_ context.Context, id uint64, note string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.OperatorNote = note
	b.UpdatedAt = time.Now().UTC()
	cp := *b
	return &cp, nil
}

// fakeNotifier records published events; it must be race-safe because
// the service notifies from goroutines.
type fakeNotifier struct {
	mu      sync.Mutex
	created int
	changed int
}

func (n *fakeNotifier) NotifyBookingCreated(context.Context, *domain.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created++
}

func (n *fakeNotifier) NotifyStatusChanged(context.Context, *domain.Booking, domain.BookingStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed++
}
