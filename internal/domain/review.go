package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string
	BookingID string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
