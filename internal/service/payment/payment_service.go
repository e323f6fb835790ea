package payment

import (
	"context"
	"fmt"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/repository"
)

type PaymentUseCase interface {
	Pay(ctx context.Context, actor *domain.User, input PayInput) (*domain.Payment, error)
	GetPaymentForBooking(ctx context.Context, actor *domain.User, bookingID string) (*domain.Payment, error)
}

// Ledger is the part of the booking service payments depend on.
type Ledger interface {
	GetBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
	ConfirmWithPayment(ctx context.Context, payment *domain.Payment) (*domain.Booking, error)
}

type PaymentService struct {
	ledger   Ledger
	payments repository.PaymentRepository
}

type PayInput struct {
	BookingID   string `json:"booking_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
}

func NewPaymentService(ledger Ledger, payments repository.PaymentRepository) *PaymentService {
	return &PaymentService{ledger: ledger, payments: payments}
}

// Pay records a completed payment for an APPROVED booking and confirms it.
func (s *PaymentService) Pay(ctx context.Context, actor *domain.User, input PayInput) (*domain.Payment, error) {
	if err := domain.RequireRole(actor, domain.RoleGuest); err != nil {
		return nil, err
	}
	method, err := domain.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, err
	}

	booking, err := s.ledger.GetBooking(ctx, actor, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusApproved {
		return nil, fmt.Errorf("%w: booking %s is %s, payment requires %s",
			domain.ErrIllegalTransition, booking.ID, booking.Status, domain.BookingStatusApproved)
	}
	if input.AmountCents != booking.TotalCents {
		return nil, fmt.Errorf("%w: amount %d does not match booking total %d",
			domain.ErrInvalidInput, input.AmountCents, booking.TotalCents)
	}

	payment := &domain.Payment{
		BookingID:   booking.ID,
		AmountCents: input.AmountCents,
		Method:      method,
		Status:      domain.PaymentStatusCompleted,
	}
	if _, err := s.ledger.ConfirmWithPayment(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) GetPaymentForBooking(ctx context.Context, actor *domain.User, bookingID string) (*domain.Payment, error) {
	if _, err := s.ledger.GetBooking(ctx, actor, bookingID); err != nil {
		return nil, err
	}
	return s.payments.GetByBookingID(ctx, bookingID)
}

var _ PaymentUseCase = (*PaymentService)(nil)
