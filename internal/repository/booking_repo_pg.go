package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	// CreatePending assigns the booking id and stores it as PENDING. It fails
	// with ErrConflict when a blocking booking overlaps the stay.
	CreatePending(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error)
	// ListByHost lists bookings on the host's properties; an empty status
	// matches every status.
	ListByHost(ctx context.Context, hostID string, status domain.BookingStatus) ([]domain.Booking, error)
	// TransitionStatus moves a booking from one status to another only if it
	// is still in the from status.
	TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error)
	// ConfirmWithPayment records the payment and confirms the booking in one
	// transaction.
	ConfirmWithPayment(ctx context.Context, payment *domain.Payment) (*domain.Booking, error)
	CompleteCheckedOut(ctx context.Context, before time.Time) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `b.id, b.guest_id, b.property_id, b.check_in, b.check_out, b.guests, b.total_cents, b.status, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, extra ...any) (*domain.Booking, error) {
	var b domain.Booking
	dest := append([]any{&b.ID, &b.GuestID, &b.PropertyID, &b.CheckIn, &b.CheckOut, &b.Guests, &b.TotalCents, &b.Status, &b.CreatedAt, &b.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) CreatePending(ctx context.Context, booking *domain.Booking) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		var active bool
		if err := tx.QueryRow(ctx, `SELECT active FROM properties WHERE id=$1 FOR UPDATE`, booking.PropertyID).Scan(&active); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return notFound("property", booking.PropertyID)
			}
			return err
		}
		if !active {
			return notFound("property", booking.PropertyID)
		}

		var overlapping bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE property_id=$1 AND status = ANY($2) AND check_in < $4 AND check_out > $3)`,
			booking.PropertyID, statusStrings(domain.BlockingStatuses()), booking.CheckIn, booking.CheckOut).Scan(&overlapping); err != nil {
			return err
		}
		if overlapping {
			return fmt.Errorf("%w: property %s is already booked for these dates", domain.ErrConflict, booking.PropertyID)
		}

		id, err := nextID(ctx, tx, ids.PrefixBooking)
		if err != nil {
			return err
		}

		booking.ID = id
		booking.Status = domain.BookingStatusPending
		return tx.QueryRow(ctx, `INSERT INTO bookings (id, guest_id, property_id, check_in, check_out, guests, total_cents, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING created_at, updated_at`,
			booking.ID, booking.GuestID, booking.PropertyID, booking.CheckIn, booking.CheckOut, booking.Guests, booking.TotalCents, booking.Status).
			Scan(&booking.CreatedAt, &booking.UpdatedAt)
	})
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+`, p.title
		FROM bookings b JOIN properties p ON p.id = b.property_id
		WHERE b.id=$1`, id)
	var title string
	b, err := scanBooking(row, &title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("booking", id)
		}
		return nil, classify(err)
	}
	b.PropertyTitle = title
	return b, nil
}

func (r *PGBookingRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`, p.title, ''
		FROM bookings b JOIN properties p ON p.id = b.property_id
		WHERE b.guest_id=$1
		ORDER BY b.check_in DESC, b.id`, guestID)
	if err != nil {
		return nil, classify(err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByHost(ctx context.Context, hostID string, status domain.BookingStatus) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+`, p.title, u.name
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		JOIN users u ON u.id = b.guest_id
		WHERE p.host_id=$1 AND ($2 = '' OR b.status = $2)
		ORDER BY b.created_at, b.id`, hostID, string(status))
	if err != nil {
		return nil, classify(err)
	}
	return collectBookings(rows)
}

// collectBookings expects the property title and guest name after the booking
// columns.
func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var title, guestName string
		b, err := scanBooking(rows, &title, &guestName)
		if err != nil {
			return nil, classify(err)
		}
		b.PropertyTitle = title
		b.GuestName = guestName
		bookings = append(bookings, *b)
	}
	return bookings, classify(rows.Err())
}

func (r *PGBookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now()
		WHERE b.id=$2 AND b.status=$3
		RETURNING `+bookingColumns, to, id, from)
	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, classify(err)
	}

	// Nothing matched: either the booking is gone or its status moved on.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: booking %s is %s, not %s", domain.ErrIllegalTransition, id, current.Status, from)
}

func (r *PGBookingRepository) ConfirmWithPayment(ctx context.Context, payment *domain.Payment) (*domain.Booking, error) {
	var confirmed *domain.Booking
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var status domain.BookingStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM bookings WHERE id=$1 FOR UPDATE`, payment.BookingID).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return notFound("booking", payment.BookingID)
			}
			return err
		}

		var paid bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE booking_id=$1)`, payment.BookingID).Scan(&paid); err != nil {
			return err
		}
		if paid {
			return fmt.Errorf("%w: booking %s is already paid", domain.ErrConflict, payment.BookingID)
		}
		if status != domain.BookingStatusApproved {
			return fmt.Errorf("%w: booking %s is %s, payment requires %s",
				domain.ErrIllegalTransition, payment.BookingID, status, domain.BookingStatusApproved)
		}

		id, err := nextID(ctx, tx, ids.PrefixPayment)
		if err != nil {
			return err
		}
		payment.ID = id
		if err := tx.QueryRow(ctx, `INSERT INTO payments (id, booking_id, amount_cents, method, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING transaction_date`,
			payment.ID, payment.BookingID, payment.AmountCents, payment.Method, payment.Status).
			Scan(&payment.TransactionDate); err != nil {
			return err
		}

		row := tx.QueryRow(ctx, `UPDATE bookings b SET status=$1, updated_at=now()
			WHERE b.id=$2
			RETURNING `+bookingColumns, domain.BookingStatusConfirmed, payment.BookingID)
		confirmed, err = scanBooking(row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (r *PGBookingRepository) CompleteCheckedOut(ctx context.Context, before time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings b SET status=$1, updated_at=now()
		WHERE b.status=$2 AND b.check_out <= $3
		RETURNING `+bookingColumns, domain.BookingStatusCompleted, domain.BookingStatusConfirmed, before)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	completed := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, classify(err)
		}
		completed = append(completed, *b)
	}
	return completed, classify(rows.Err())
}

var _ BookingRepository = (*PGBookingRepository)(nil)
