package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=booking_service.go -destination=mocks/mock_booking_repository.go -package=mocks

type BookingRepository interface {
	InsertBooking(ctx context.Context, booking Booking) (Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (Booking, error)
}

type Service struct {
	repo   BookingRepository
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(repo BookingRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(zap.String("component", "booking-service"))

	return s
}

// CreateBooking prices the request and stores it. Date, time and shoe sizes
// are kept exactly as given, and lanes are trusted as sent by the client.
func (s *Service) CreateBooking(ctx context.Context, req NewBooking) (Booking, error) {
	lanes := 0
	if req.Lanes != nil {
		lanes = *req.Lanes
	}

	players := req.Players
	if players == nil {
		players = []int{}
	}

	shoeSizes := req.ShoeSizes
	if shoeSizes == nil {
		shoeSizes = []ShoeSize{}
	}

	booking := Booking{
		Date:       req.Date,
		Time:       req.Time,
		Players:    players,
		Lanes:      lanes,
		ShoeSizes:  shoeSizes,
		TotalPrice: TotalPrice(len(players), lanes),
		CreatedAt:  s.now().UTC(),
	}

	inserted, err := s.repo.InsertBooking(ctx, booking)

	if err != nil {
		return Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("bookingNumber", inserted.BookingNumber),
		zap.Int("players", len(inserted.Players)),
		zap.Int("lanes", inserted.Lanes),
		zap.Int("totalPrice", inserted.TotalPrice),
	)

	return inserted, nil
}

func (s *Service) FindBookingByNumber(ctx context.Context, number string) (Booking, error) {
	if err := ValidateBookingNumber(number); err != nil {
		return Booking{}, err
	}

	return s.repo.GetBookingByNumber(ctx, number)
}

func ValidateBookingNumber(number string) error {
	if len(strings.TrimSpace(number)) == 0 {
		return ErrMissingBookingNumber
	}

	return nil
}
