package api

import (
	"context"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/service/auth"
	"github.com/Domenick1991/saraye/internal/service/booking"
	"github.com/Domenick1991/saraye/internal/service/payment"
	"github.com/Domenick1991/saraye/internal/service/property"
	"github.com/Domenick1991/saraye/internal/service/report"
	"github.com/Domenick1991/saraye/internal/service/review"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) booking(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) bookings(args mock.Arguments) ([]domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, actor *domain.User, input booking.CreateBookingInput) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, actor, input))
}

func (m *MockBookingUseCase) ApproveBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingUseCase) DeclineBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingUseCase) ConfirmWithPayment(ctx context.Context, p *domain.Payment) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, p))
}

func (m *MockBookingUseCase) CompleteFinishedStays(ctx context.Context, now time.Time) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, now))
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, actor *domain.User, id string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, actor, id))
}

func (m *MockBookingUseCase) ListGuestBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, actor))
}

func (m *MockBookingUseCase) ListHostBookings(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, actor))
}

func (m *MockBookingUseCase) ListPendingForHost(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, actor))
}

var _ booking.BookingUseCase = (*MockBookingUseCase)(nil)

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Pay(ctx context.Context, actor *domain.User, input payment.PayInput) (*domain.Payment, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentUseCase) GetPaymentForBooking(ctx context.Context, actor *domain.User, bookingID string) (*domain.Payment, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockReviewUseCase struct {
	mock.Mock
}

func (m *MockReviewUseCase) CreateReview(ctx context.Context, actor *domain.User, input review.ReviewInput) (*domain.Review, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewUseCase) ListPropertyReviews(ctx context.Context, propertyID string) ([]domain.Review, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockPropertyUseCase struct {
	mock.Mock
}

func (m *MockPropertyUseCase) property(args mock.Arguments) (*domain.Property, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyUseCase) CreateProperty(ctx context.Context, actor *domain.User, input property.PropertyInput) (*domain.Property, error) {
	return m.property(m.Called(ctx, actor, input))
}

func (m *MockPropertyUseCase) UpdateProperty(ctx context.Context, actor *domain.User, id string, input property.PropertyInput) (*domain.Property, error) {
	return m.property(m.Called(ctx, actor, id, input))
}

func (m *MockPropertyUseCase) DeactivateProperty(ctx context.Context, actor *domain.User, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockPropertyUseCase) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	return m.property(m.Called(ctx, id))
}

func (m *MockPropertyUseCase) SearchProperties(ctx context.Context, input property.SearchInput) ([]domain.Property, error) {
	args := m.Called(ctx, input)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyUseCase) ListHostProperties(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyUseCase) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	return m.user(m.Called(ctx, input))
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return m.user(m.Called(ctx, token))
}

func (m *MockAuthUseCase) UpdateProfile(ctx context.Context, actor *domain.User, input auth.ProfileInput) (*domain.User, error) {
	return m.user(m.Called(ctx, actor, input))
}

func (m *MockAuthUseCase) ChangePassword(ctx context.Context, actor *domain.User, current, next string) error {
	args := m.Called(ctx, actor, current, next)
	return args.Error(0)
}

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) report(args mock.Arguments) (*domain.Report, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportUseCase) CreateReport(ctx context.Context, actor *domain.User, input report.ReportInput) (*domain.Report, error) {
	return m.report(m.Called(ctx, actor, input))
}

func (m *MockReportUseCase) ListOpenReports(ctx context.Context, actor *domain.User) ([]domain.Report, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportUseCase) ResolveReport(ctx context.Context, actor *domain.User, reportID, action string) (*domain.Report, error) {
	return m.report(m.Called(ctx, actor, reportID, action))
}
