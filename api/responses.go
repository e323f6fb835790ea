package api

import (
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/pricing"
	"github.com/Domenick1991/saraye/internal/service/auth"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

func toSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: toUserResponse(s.User)}
}

type addressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zip_code"`
}

type propertyResponse struct {
	ID          string          `json:"id"`
	HostID      string          `json:"host_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	PriceCents  int64           `json:"price_cents"`
	MaxGuests   int             `json:"max_guests"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   int             `json:"bathrooms"`
	Address     addressResponse `json:"address"`
	Amenities   []string        `json:"amenities"`
	Active      bool            `json:"active"`
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return propertyResponse{
		ID:          p.ID,
		HostID:      p.HostID,
		Title:       p.Title,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		MaxGuests:   p.MaxGuests,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Address: addressResponse{
			Street:  p.Address.Street,
			City:    p.Address.City,
			Country: p.Address.Country,
			ZipCode: p.Address.ZipCode,
		},
		Amenities: amenities,
		Active:    p.Active,
	}
}

func toPropertyResponses(ps []domain.Property) []propertyResponse {
	out := make([]propertyResponse, len(ps))
	for i := range ps {
		out[i] = toPropertyResponse(&ps[i])
	}
	return out
}

type bookingResponse struct {
	ID            string    `json:"id"`
	GuestID       string    `json:"guest_id"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title,omitempty"`
	GuestName     string    `json:"guest_name,omitempty"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalCents    int64     `json:"total_cents"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		GuestID:       b.GuestID,
		PropertyID:    b.PropertyID,
		PropertyTitle: b.PropertyTitle,
		GuestName:     b.GuestName,
		CheckIn:       b.CheckIn.Format(pricing.DateLayout),
		CheckOut:      b.CheckOut.Format(pricing.DateLayout),
		Guests:        b.Guests,
		TotalCents:    b.TotalCents,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

func toBookingResponses(bs []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bs))
	for i := range bs {
		out[i] = toBookingResponse(&bs[i])
	}
	return out
}

type paymentResponse struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"booking_id"`
	AmountCents     int64     `json:"amount_cents"`
	Method          string    `json:"method"`
	Status          string    `json:"status"`
	TransactionDate time.Time `json:"transaction_date"`
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:              p.ID,
		BookingID:       p.BookingID,
		AmountCents:     p.AmountCents,
		Method:          string(p.Method),
		Status:          string(p.Status),
		TransactionDate: p.TransactionDate,
	}
}

type reviewResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{ID: r.ID, BookingID: r.BookingID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
}

type reportResponse struct {
	ID          string     `json:"id"`
	PropertyID  string     `json:"property_id"`
	ReporterID  string     `json:"reporter_id"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		ReporterID:  r.ReporterID,
		Description: r.Description,
		Status:      string(r.Status),
		Resolution:  string(r.Resolution),
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

type amenityResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IconPath string `json:"icon_path"`
}

func toAmenityResponses(as []domain.Amenity) []amenityResponse {
	out := make([]amenityResponse, len(as))
	for i, a := range as {
		out[i] = amenityResponse{ID: a.ID, Name: a.Name, IconPath: a.IconPath}
	}
	return out
}
