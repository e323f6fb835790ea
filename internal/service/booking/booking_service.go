package booking

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/kafka"
	"github.com/Domenick1991/saraye/internal/pricing"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, actor *domain.User, input CreateBookingInput) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	DeclineBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	ConfirmWithPayment(ctx context.Context, payment *domain.Payment) (*domain.Booking, error)
	CompleteFinishedStays(ctx context.Context, now time.Time) ([]domain.Booking, error)
	GetBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	ListGuestBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error)
	ListHostBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error)
	ListPendingForHost(ctx context.Context, actor *domain.User) ([]domain.Booking, error)
}

type PropertyLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

// Locker serialises booking writes per property across app instances.
type Locker interface {
	AcquirePropertyLock(ctx context.Context, propertyID string, ttl time.Duration) (string, error)
	ReleasePropertyLock(ctx context.Context, propertyID, token string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	properties         PropertyLookup
	locker             Locker
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	lockTTL            time.Duration
	log                logrus.FieldLogger
}

type CreateBookingInput struct {
	PropertyID string `json:"property_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLocker(locker Locker, ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	properties PropertyLookup,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		properties:   properties,
		producer:     producer,
		bookingTopic: bookingTopic,
		lockTTL:      10 * time.Second,
		log:          discardLogger(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (s *BookingService) CreateBooking(ctx context.Context, actor *domain.User, input CreateBookingInput) (*domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleGuest); err != nil {
		return nil, err
	}

	checkIn, err := pricing.ParseDate(input.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := pricing.ParseDate(input.CheckOut)
	if err != nil {
		return nil, err
	}
	nights, err := pricing.ValidateStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if input.Guests < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", domain.ErrInvalidInput)
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, input.PropertyID)
	}
	if !pricing.FitsCapacity(input.Guests, property.MaxGuests) {
		return nil, fmt.Errorf("%w: property %s sleeps at most %d guests", domain.ErrInvalidInput, property.ID, property.MaxGuests)
	}

	if s.locker != nil {
		token, err := s.locker.AcquirePropertyLock(ctx, property.ID, s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("%w: acquire property lock: %w", domain.ErrStorage, err)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: another booking for property %s is in progress", domain.ErrConflict, property.ID)
		}
		defer func() {
			// The lock must be freed even if the caller has gone away.
			if err := s.locker.ReleasePropertyLock(context.WithoutCancel(ctx), property.ID, token); err != nil {
				s.log.WithError(err).WithField("property_id", property.ID).Warn("failed to release property lock")
			}
		}()
	}

	booking := &domain.Booking{
		GuestID:       actor.ID,
		PropertyID:    property.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        input.Guests,
		TotalCents:    pricing.TotalPrice(nights, property.PriceCents),
		PropertyTitle: property.Title,
	}
	if err := s.bookings.CreatePending(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) ApproveBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return s.hostDecision(ctx, actor, id, domain.BookingStatusApproved, kafka.EventBookingApproved)
}

func (s *BookingService) DeclineBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return s.hostDecision(ctx, actor, id, domain.BookingStatusDeclined, kafka.EventBookingDeclined)
}

func (s *BookingService) hostDecision(ctx context.Context, actor *domain.User, id string, to domain.BookingStatus, eventType string) (*domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireHostOwner(ctx, actor, current); err != nil {
		return nil, err
	}
	return s.transition(ctx, current, to, eventType)
}

func (s *BookingService) CancelBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleGuest); err != nil {
		return nil, err
	}
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.GuestID != actor.ID {
		return nil, fmt.Errorf("%w: booking %s belongs to another guest", domain.ErrUnauthorized, id)
	}
	return s.transition(ctx, current, domain.BookingStatusCancelled, kafka.EventBookingCancelled)
}

// transition checks the move against the status table before writing; the
// repository repeats the check atomically against the stored status.
func (s *BookingService) transition(ctx context.Context, current *domain.Booking, to domain.BookingStatus, eventType string) (*domain.Booking, error) {
	if !current.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: booking %s is %s and cannot become %s", domain.ErrIllegalTransition, current.ID, current.Status, to)
	}

	updated, err := s.bookings.TransitionStatus(ctx, current.ID, current.Status, to)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventType, updated)
	return updated, nil
}

func (s *BookingService) ConfirmWithPayment(ctx context.Context, payment *domain.Payment) (*domain.Booking, error) {
	confirmed, err := s.bookings.ConfirmWithPayment(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingConfirmed, confirmed)
	return confirmed, nil
}

func (s *BookingService) CompleteFinishedStays(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	completed, err := s.bookings.CompleteCheckedOut(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range completed {
		s.publish(ctx, kafka.EventBookingCompleted, &completed[i])
	}
	return completed, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return b, nil
	case domain.RoleGuest:
		if b.GuestID != actor.ID {
			return nil, fmt.Errorf("%w: booking %s belongs to another guest", domain.ErrUnauthorized, id)
		}
		return b, nil
	case domain.RoleHost:
		if err := s.requireHostOwner(ctx, actor, b); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, actor.Role)
	}
}

func (s *BookingService) ListGuestBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleGuest); err != nil {
		return nil, err
	}
	return s.bookings.ListByGuest(ctx, actor.ID)
}

func (s *BookingService) ListHostBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	return s.bookings.ListByHost(ctx, actor.ID, "")
}

func (s *BookingService) ListPendingForHost(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	return s.bookings.ListByHost(ctx, actor.ID, domain.BookingStatusPending)
}

func (s *BookingService) requireHostOwner(ctx context.Context, actor *domain.User, b *domain.Booking) error {
	property, err := s.properties.GetByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	if property.HostID != actor.ID {
		return fmt.Errorf("%w: property %s belongs to another host", domain.ErrUnauthorized, property.ID)
	}
	return nil
}

// publish never fails the caller: the ledger write has already committed.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking)
	entry := s.log.WithFields(logrus.Fields{"booking_id": booking.ID, "event": eventType})

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		entry.WithError(err).Warn("failed to publish booking event")
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
			entry.WithError(err).Warn("failed to publish notification event")
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
