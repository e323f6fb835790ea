package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository is read-only: payments are written together with the
// booking confirmation in BookingRepository.ConfirmWithPayment.
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func (r *PGPaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.QueryRow(ctx, `SELECT id, booking_id, amount_cents, method, status, transaction_date FROM payments WHERE booking_id=$1`, bookingID).
		Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Method, &p.Status, &p.TransactionDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("payment for booking", bookingID)
		}
		return nil, classify(err)
	}
	return &p, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
