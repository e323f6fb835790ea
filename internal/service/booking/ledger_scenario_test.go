package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/Domenick1991/saraye/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBookings is a stateful stand-in for the PostgreSQL ledger with the same
// overlap, compare-and-set and payment rules.
type memBookings struct {
	mu       sync.Mutex
	ids      *ids.Generator
	bookings map[string]*domain.Booking
	paid     map[string]bool
	writes   int
}

func newMemBookings() *memBookings {
	return &memBookings{
		ids:      ids.NewGenerator(ids.NewMemorySequence()),
		bookings: make(map[string]*domain.Booking),
		paid:     make(map[string]bool),
	}
}

func (m *memBookings) CreatePending(ctx context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.bookings {
		if other.PropertyID == b.PropertyID && other.Status.Blocks() &&
			pricing.Overlaps(b.CheckIn, b.CheckOut, other.CheckIn, other.CheckOut) {
			return domain.ErrConflict
		}
	}
	id, err := m.ids.Next(ctx, ids.PrefixBooking)
	if err != nil {
		return err
	}
	b.ID = id
	b.Status = domain.BookingStatusPending
	stored := *b
	m.bookings[id] = &stored
	m.writes++
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
	}
	out := *b
	return &out, nil
}

func (m *memBookings) ListByGuest(context.Context, string) ([]domain.Booking, error) {
	return nil, nil
}

func (m *memBookings) ListByHost(context.Context, string, domain.BookingStatus) ([]domain.Booking, error) {
	return nil, nil
}

func (m *memBookings) TransitionStatus(_ context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if b.Status != from {
		return nil, domain.ErrIllegalTransition
	}
	b.Status = to
	m.writes++
	out := *b
	return &out, nil
}

func (m *memBookings) ConfirmWithPayment(_ context.Context, p *domain.Payment) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[p.BookingID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.paid[p.BookingID] {
		return nil, domain.ErrConflict
	}
	if b.Status != domain.BookingStatusApproved {
		return nil, domain.ErrIllegalTransition
	}
	m.paid[p.BookingID] = true
	b.Status = domain.BookingStatusConfirmed
	m.writes++
	out := *b
	return &out, nil
}

func (m *memBookings) CompleteCheckedOut(_ context.Context, before time.Time) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var done []domain.Booking
	for _, b := range m.bookings {
		if b.Status == domain.BookingStatusConfirmed && !b.CheckOut.After(before) {
			b.Status = domain.BookingStatusCompleted
			done = append(done, *b)
		}
	}
	return done, nil
}

type staticProperties map[string]*domain.Property

func (s staticProperties) GetByID(_ context.Context, id string) (*domain.Property, error) {
	p, ok := s[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func newLedger() (*BookingService, *memBookings) {
	store := newMemBookings()
	return NewBookingService(store, staticProperties{"P001": villa()}, nil, ""), store
}

func TestLedger_FullLifecycle(t *testing.T) {
	service, _ := newLedger()
	ctx := context.Background()

	b, err := service.CreateBooking(ctx, guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-01", CheckOut: "2025-12-05", Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, "B001", b.ID)
	assert.Equal(t, int64(60000), b.TotalCents)

	_, err = service.ApproveBooking(ctx, host, b.ID)
	require.NoError(t, err)

	_, err = service.DeclineBooking(ctx, host, b.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	confirmed, err := service.ConfirmWithPayment(ctx, &domain.Payment{BookingID: b.ID, AmountCents: 60000})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status)

	_, err = service.ConfirmWithPayment(ctx, &domain.Payment{BookingID: b.ID, AmountCents: 60000})
	assert.ErrorIs(t, err, domain.ErrConflict)

	completed, err := service.CompleteFinishedStays(ctx, time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, domain.BookingStatusCompleted, completed[0].Status)
}

func TestLedger_OnlyApprovedCanBeConfirmed(t *testing.T) {
	service, _ := newLedger()
	ctx := context.Background()

	b, err := service.CreateBooking(ctx, guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-01", CheckOut: "2025-12-03", Guests: 1})
	require.NoError(t, err)

	_, err = service.ConfirmWithPayment(ctx, &domain.Payment{BookingID: b.ID})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestLedger_InvalidDateRangeWritesNothing(t *testing.T) {
	service, store := newLedger()

	_, err := service.CreateBooking(context.Background(), guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-05", CheckOut: "2025-12-01", Guests: 1})

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.Zero(t, store.writes)
}

func TestLedger_OverlapRejected(t *testing.T) {
	service, _ := newLedger()
	ctx := context.Background()

	_, err := service.CreateBooking(ctx, guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-01", CheckOut: "2025-12-05", Guests: 1})
	require.NoError(t, err)

	_, err = service.CreateBooking(ctx, otherGuest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-04", CheckOut: "2025-12-06", Guests: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Checking in on the previous guest's checkout day is fine.
	b, err := service.CreateBooking(ctx, otherGuest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-05", CheckOut: "2025-12-06", Guests: 1})
	require.NoError(t, err)
	assert.Equal(t, "B002", b.ID)
}

func TestLedger_CancelledFreesDates(t *testing.T) {
	service, _ := newLedger()
	ctx := context.Background()

	b, err := service.CreateBooking(ctx, guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-01", CheckOut: "2025-12-05", Guests: 1})
	require.NoError(t, err)
	_, err = service.CancelBooking(ctx, guest, b.ID)
	require.NoError(t, err)

	_, err = service.CreateBooking(ctx, otherGuest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-02", CheckOut: "2025-12-04", Guests: 1})
	assert.NoError(t, err)
}

func TestLedger_TerminalStatusesNeverChange(t *testing.T) {
	ctx := context.Background()

	terminal := map[string]func(s *BookingService, id string) error{
		"declined": func(s *BookingService, id string) error {
			_, err := s.DeclineBooking(ctx, host, id)
			return err
		},
		"cancelled": func(s *BookingService, id string) error {
			_, err := s.CancelBooking(ctx, guest, id)
			return err
		},
	}

	for name, reach := range terminal {
		t.Run(name, func(t *testing.T) {
			service, store := newLedger()
			b, err := service.CreateBooking(ctx, guest, CreateBookingInput{PropertyID: "P001", CheckIn: "2025-12-01", CheckOut: "2025-12-05", Guests: 1})
			require.NoError(t, err)
			require.NoError(t, reach(service, b.ID))

			before, _ := store.GetByID(ctx, b.ID)
			writes := store.writes

			_, err = service.ApproveBooking(ctx, host, b.ID)
			assert.ErrorIs(t, err, domain.ErrIllegalTransition)
			_, err = service.DeclineBooking(ctx, host, b.ID)
			assert.ErrorIs(t, err, domain.ErrIllegalTransition)
			_, err = service.CancelBooking(ctx, guest, b.ID)
			assert.ErrorIs(t, err, domain.ErrIllegalTransition)
			_, err = service.ConfirmWithPayment(ctx, &domain.Payment{BookingID: b.ID})
			assert.ErrorIs(t, err, domain.ErrIllegalTransition)

			after, _ := store.GetByID(ctx, b.ID)
			assert.Equal(t, before.Status, after.Status)
			assert.Equal(t, writes, store.writes)
		})
	}
}
