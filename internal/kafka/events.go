package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingApproved  = "booking_approved"
	EventBookingDeclined  = "booking_declined"
	EventBookingCancelled = "booking_cancelled"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCompleted = "booking_completed"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	GuestID    string    `json:"guest_id"`
	PropertyID string    `json:"property_id"`
	Status     string    `json:"status"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	TotalCents int64     `json:"total_cents"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		GuestID:    b.GuestID,
		PropertyID: b.PropertyID,
		Status:     string(b.Status),
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		TotalCents: b.TotalCents,
		OccurredAt: time.Now().UTC(),
	}
}

func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" || event.BookingID == "" {
		return BookingEvent{}, fmt.Errorf("decode booking event: missing type or booking id")
	}
	return event, nil
}
