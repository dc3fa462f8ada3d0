package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	bk "github.com/hanksha/strajk-bowling-booking/booking"
	"github.com/hanksha/strajk-bowling-booking/session"
	"go.uber.org/zap"
)

//go:generate mockgen -source=form.go -destination=mocks/mock_booking_creator.go -package=mock_form

// BookingKey is the session key holding the last created booking as JSON.
const BookingKey = "booking"

// AlertMessage is shown to the user whenever a submit fails, whatever the
// cause.
const AlertMessage = "Något gick fel. Försök igen."

// Shoe sizes accepted by the size inputs.
const (
	MinShoeSize = 30
	MaxShoeSize = 50
)

const dateLayout = "2006-01-02"

var (
	ErrBookingFailed    = errors.New("booking failed")
	ErrSubmitInProgress = errors.New("a booking is already being submitted")
	ErrPlayerOutOfRange = errors.New("player is out of range")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingTime      = errors.New("time is required")
	ErrShoeSizeRange    = errors.New("shoe size is out of range")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrDateInPast       = errors.New("date is in the past")
)

type BookingCreator interface {
	CreateBooking(ctx context.Context, req bk.NewBooking) (bk.Booking, error)
}

type Form struct {
	mu         sync.Mutex
	date       string
	time       string
	players    int
	shoeSizes  map[int]int
	submitting bool

	creator BookingCreator
	storage session.Storage
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Form)

// WithClock replaces the clock that decides which dates are in the past.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		f.now = now
	}
}

func New(creator BookingCreator, storage session.Storage, logger *zap.Logger, opts ...Option) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Form{
		players:   1,
		shoeSizes: map[int]int{},
		creator:   creator,
		storage:   storage,
		logger:    logger.With(zap.String("component", "booking-form")),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Form) SetDate(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.date = date
}

func (f *Form) SetTime(time string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.time = time
}

// SetPlayerCount changes the number of players, never going below one, and
// drops shoe sizes of players that no longer exist.
func (f *Form) SetPlayerCount(count int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if count < 1 {
		count = 1
	}

	f.players = count

	for player := range f.shoeSizes {
		if player > count {
			delete(f.shoeSizes, player)
		}
	}
}

func (f *Form) PlayerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.players
}

func (f *Form) Lanes() int {
	return bk.DeriveLaneCount(f.PlayerCount())
}

// SetShoeSize records a shoe size for a player. A zero size clears it, like
// emptying the input field; any other size must lie within MinShoeSize and
// MaxShoeSize.
func (f *Form) SetShoeSize(player, size int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if player < 1 || player > f.players {
		return fmt.Errorf("%w: player %d of %d", ErrPlayerOutOfRange, player, f.players)
	}

	if size == 0 {
		delete(f.shoeSizes, player)
		return nil
	}

	if size < MinShoeSize || size > MaxShoeSize {
		return fmt.Errorf("%w: %d not in %d-%d", ErrShoeSizeRange, size, MinShoeSize, MaxShoeSize)
	}

	f.shoeSizes[player] = size

	return nil
}

func (f *Form) RemoveShoeSize(player int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.shoeSizes, player)
}

func (f *Form) ShoeSize(player int) (int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	size, ok := f.shoeSizes[player]

	return size, ok
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.submitting
}

func (f *Form) Payload() bk.NewBooking {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.payloadLocked()
}

func (f *Form) payloadLocked() bk.NewBooking {
	players := make([]int, f.players)
	for i := range players {
		players[i] = i + 1
	}

	shoeSizes := make([]bk.ShoeSize, 0, len(f.shoeSizes))
	for player, size := range f.shoeSizes {
		shoeSizes = append(shoeSizes, bk.ShoeSize{Player: player, Size: size})
	}
	slices.SortFunc(shoeSizes, func(a, b bk.ShoeSize) int {
		return a.Player - b.Player
	})

	lanes := bk.DeriveLaneCount(f.players)

	return bk.NewBooking{
		Date:      f.date,
		Time:      f.time,
		Players:   players,
		Lanes:     &lanes,
		ShoeSizes: shoeSizes,
	}
}

// Submit sends the booking and, only once it has been accepted, stores it in
// the session for the confirmation view. A second submit while one is in
// flight is refused; the in-flight request is not cancelled.
func (f *Form) Submit(ctx context.Context) (bk.Booking, error) {
	f.mu.Lock()

	if f.submitting {
		f.mu.Unlock()
		return bk.Booking{}, ErrSubmitInProgress
	}

	if f.date == "" {
		f.mu.Unlock()
		return bk.Booking{}, ErrMissingDate
	}

	if err := f.checkDateLocked(); err != nil {
		f.mu.Unlock()
		return bk.Booking{}, err
	}

	if f.time == "" {
		f.mu.Unlock()
		return bk.Booking{}, ErrMissingTime
	}

	payload := f.payloadLocked()
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	created, err := f.creator.CreateBooking(ctx, payload)

	if err != nil {
		f.logger.Error("failed to submit booking", zap.Error(err))
		return bk.Booking{}, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	data, err := json.Marshal(created)

	if err != nil {
		f.logger.Error("failed to encode booking", zap.Error(err))
		return bk.Booking{}, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	f.storage.SetItem(BookingKey, string(data))

	f.logger.Info("booking submitted", zap.String("bookingNumber", created.BookingNumber))

	return created, nil
}

// checkDateLocked rejects dates before today. Dates compare as strings once
// they parse in the canonical layout.
func (f *Form) checkDateLocked() error {
	if _, err := time.Parse(dateLayout, f.date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, f.date)
	}

	today := f.now().Format(dateLayout)
	if f.date < today {
		return fmt.Errorf("%w: %s is before %s", ErrDateInPast, f.date, today)
	}

	return nil
}
