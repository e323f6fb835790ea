package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusDeclined,
	BookingStatusCancelled,
	BookingStatusConfirmed,
	BookingStatusCompleted,
}

func TestBookingStatus_Transitions(t *testing.T) {
	testCases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusPending, BookingStatusApproved, true},
		{BookingStatusPending, BookingStatusDeclined, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusConfirmed, false},
		{BookingStatusApproved, BookingStatusConfirmed, true},
		{BookingStatusApproved, BookingStatusCancelled, true},
		{BookingStatusApproved, BookingStatusDeclined, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, false},
		{BookingStatusDeclined, BookingStatusConfirmed, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatus_TerminalStatusesHaveNoExit(t *testing.T) {
	for _, terminal := range []BookingStatus{BookingStatusDeclined, BookingStatusCancelled, BookingStatusCompleted} {
		assert.True(t, terminal.IsTerminal(), terminal)
		for _, next := range allStatuses {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
		}
	}
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatus("BOGUS").IsTerminal())
}

func TestBookingStatus_OnlyApprovedReachesConfirmed(t *testing.T) {
	for _, from := range allStatuses {
		assert.Equal(t, from == BookingStatusApproved, from.CanTransitionTo(BookingStatusConfirmed), from)
	}
}

func TestBookingStatus_Blocks(t *testing.T) {
	blocking := map[BookingStatus]bool{}
	for _, s := range BlockingStatuses() {
		blocking[s] = true
	}
	for _, s := range allStatuses {
		assert.Equal(t, blocking[s], s.Blocks(), s)
	}
}

func TestParseRoleAndPrefix(t *testing.T) {
	role, err := ParseRole(" host ")
	assert.NoError(t, err)
	assert.Equal(t, RoleHost, role)
	assert.Equal(t, "H", role.IDPrefix())
	assert.Equal(t, "G", RoleGuest.IDPrefix())
	assert.Equal(t, "A", RoleAdmin.IDPrefix())

	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrInvalidInput)

	var anonymous *User
	assert.False(t, anonymous.HasRole(RoleGuest))
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("jazzcash")
	assert.NoError(t, err)
	assert.Equal(t, PaymentMethodJazzCash, m)

	_, err = ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestIsKnown(t *testing.T) {
	assert.True(t, IsKnown(ErrConflict))
	assert.False(t, IsKnown(assert.AnError))
}
