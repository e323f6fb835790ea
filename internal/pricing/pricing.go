// Package pricing holds the date and price arithmetic behind bookings. Every
// function is pure.
package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
)

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// Nights counts whole calendar days from checkIn to checkOut; time of day is
// ignored. Negative when checkOut precedes checkIn.
func Nights(checkIn, checkOut time.Time) int {
	return int(day(checkOut).Sub(day(checkIn)).Hours() / 24)
}

// ValidateStay returns the number of nights, or ErrInvalidDateRange unless
// checkOut is strictly after checkIn.
func ValidateStay(checkIn, checkOut time.Time) (int, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidDateRange,
			checkIn.Format(DateLayout), checkOut.Format(DateLayout))
	}
	return nights, nil
}

func TotalPrice(nights int, nightlyCents int64) int64 {
	return int64(nights) * nightlyCents
}

func FitsCapacity(requestedGuests, maxGuests int) bool {
	return requestedGuests <= maxGuests
}

// Overlaps treats both stays as half-open [checkIn, checkOut), so a guest may
// check in on the day the previous guest checks out.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return day(aIn).Before(day(bOut)) && day(bIn).Before(day(aOut))
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
