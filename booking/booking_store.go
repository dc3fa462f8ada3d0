package booking

import (
	"context"
	"fmt"
	"sync"
)

// Store keeps every booking made during the process lifetime. Nothing is
// evicted and nothing survives a restart.
type Store struct {
	mu       sync.Mutex
	counter  int
	bookings []Booking
}

func NewStore() *Store {
	return &Store{counter: FirstNumber}
}

// AllocateNumber returns the next booking number and advances the counter.
func (s *Store) AllocateNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allocateLocked()
}

func (s *Store) Append(booking Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append(s.bookings, booking.Clone())
}

func (s *Store) FindByNumber(number string) (Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, booking := range s.bookings {
		if booking.BookingNumber == number {
			return booking.Clone(), true
		}
	}

	return Booking{}, false
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.bookings)
}

// InsertBooking assigns a number to booking and appends it while holding the
// lock for both steps, so concurrent inserts never share a number.
func (s *Store) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	if err := ctx.Err(); err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking.BookingNumber = s.allocateLocked()
	booking = booking.Clone()
	s.bookings = append(s.bookings, booking)

	return booking.Clone(), nil
}

func (s *Store) GetBookingByNumber(ctx context.Context, number string) (Booking, error) {
	if err := ctx.Err(); err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with number %v: %w", number, err)
	}

	booking, found := s.FindByNumber(number)

	if !found {
		return Booking{}, ErrBookingNotFound
	}

	return booking, nil
}

func (s *Store) allocateLocked() string {
	number := fmt.Sprintf("%s%d", NumberPrefix, s.counter)
	s.counter++

	return number
}
