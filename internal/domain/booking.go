package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusApproved  BookingStatus = "APPROVED"
	BookingStatusDeclined  BookingStatus = "DECLINED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusDeclined, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusDeclined,
		BookingStatusCancelled, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Blocks reports whether a booking in this status holds the property's
// calendar against overlapping requests.
func (s BookingStatus) Blocks() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusConfirmed:
		return true
	}
	return false
}

// BlockingStatuses lists every status for which Blocks is true.
func BlockingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusApproved, BookingStatusConfirmed}
}

type Booking struct {
	ID         string
	GuestID    string
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalCents int64
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Filled by list queries only.
	PropertyTitle string
	GuestName     string
}
