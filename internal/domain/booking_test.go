package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusConfirmed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, BookingStatus("").Valid())
	assert.False(t, BookingStatus("refunded").Valid())
}

func TestTransitionSources(t *testing.T) {
	assert.ElementsMatch(t,
		[]BookingStatus{StatusPending},
		TransitionSources(StatusConfirmed))
	assert.ElementsMatch(t,
		[]BookingStatus{StatusPending, StatusConfirmed},
		TransitionSources(StatusCancelled))
	// nothing leads back to pending
	assert.Empty(t, TransitionSources(StatusPending))
}
