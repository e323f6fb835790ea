package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/Domenick1991/saraye/internal/repository"
)

type ReviewUseCase interface {
	CreateReview(ctx context.Context, actor *domain.User, input ReviewInput) (*domain.Review, error)
	ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.Review, error)
}

type BookingReader interface {
	GetBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error)
}

type ReviewInput struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewService struct {
	bookings BookingReader
	reviews  repository.ReviewRepository
	ids      *ids.Generator
}

func NewReviewService(bookings BookingReader, reviews repository.ReviewRepository, gen *ids.Generator) *ReviewService {
	return &ReviewService{bookings: bookings, reviews: reviews, ids: gen}
}

// CreateReview lets the guest of a completed stay leave one review.
func (s *ReviewService) CreateReview(ctx context.Context, actor *domain.User, input ReviewInput) (*domain.Review, error) {
	if err := domain.RequireRole(actor, domain.RoleGuest); err != nil {
		return nil, err
	}
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	booking, err := s.bookings.GetBooking(ctx, actor, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, fmt.Errorf("%w: booking %s is %s, reviews need a completed stay",
			domain.ErrIllegalTransition, booking.ID, booking.Status)
	}

	exists, err := s.reviews.ExistsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: booking %s already has a review", domain.ErrConflict, booking.ID)
	}

	id, err := s.ids.Next(ctx, ids.PrefixReview)
	if err != nil {
		return nil, err
	}
	review := &domain.Review{
		ID:        id,
		BookingID: booking.ID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.Review, error) {
	return s.reviews.ListByProperty(ctx, propertyID)
}

var _ ReviewUseCase = (*ReviewService)(nil)
