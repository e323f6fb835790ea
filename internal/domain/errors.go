package domain

import "errors"

// Error kinds returned by services. Callers match them with errors.Is; the
// wrapped message carries the detail.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("check-out date must be after check-in date")
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrUnauthorized      = errors.New("not permitted")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrStorage           = errors.New("storage failure")
)

var kinds = []error{
	ErrInvalidInput,
	ErrInvalidDateRange,
	ErrUnauthenticated,
	ErrUnauthorized,
	ErrIllegalTransition,
	ErrNotFound,
	ErrConflict,
	ErrStorage,
}

// IsKnown reports whether err already carries one of the error kinds above.
func IsKnown(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
