package repository

import (
	"context"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsForBooking(ctx context.Context, bookingID string) (bool, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error)
}

type PGReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepository {
	return &PGReviewRepository{db: db}
}

func (r *PGReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	err := r.db.QueryRow(ctx, `INSERT INTO reviews (id, booking_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		review.ID, review.BookingID, review.Rating, review.Comment).Scan(&review.CreatedAt)
	return classify(err)
}

func (r *PGReviewRepository) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id=$1)`, bookingID).Scan(&exists)
	return exists, classify(err)
}

func (r *PGReviewRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT r.id, r.booking_id, r.rating, r.comment, r.created_at
		FROM reviews r JOIN bookings b ON b.id = r.booking_id
		WHERE b.property_id=$1
		ORDER BY r.created_at DESC`, propertyID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, classify(err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, classify(rows.Err())
}

var _ ReviewRepository = (*PGReviewRepository)(nil)
