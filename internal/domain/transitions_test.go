package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_AllowedPaths(t *testing.T) {
	tests := []struct {
		name  string
		from  BookingStatus
		to    BookingStatus
		actor Actor
	}{
		{"partner confirms pending", StatusPending, StatusConfirmed, ActorPartner},
		{"client cancels pending", StatusPending, StatusCanceledByClient, ActorClient},
		{"partner cancels pending", StatusPending, StatusCanceledByPartner, ActorPartner},
		{"partner starts confirmed", StatusConfirmed, StatusInProgress, ActorPartner},
		{"partner completes confirmed directly", StatusConfirmed, StatusCompleted, ActorPartner},
		{"partner marks no-show", StatusConfirmed, StatusNoShow, ActorPartner},
		{"client cancels confirmed", StatusConfirmed, StatusCanceledByClient, ActorClient},
		{"partner cancels confirmed", StatusConfirmed, StatusCanceledByPartner, ActorPartner},
		{"partner completes in-progress", StatusInProgress, StatusCompleted, ActorPartner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, CanTransition(tt.from, tt.to, tt.actor))
		})
	}
}

func TestCanTransition_RejectedPaths(t *testing.T) {
	tests := []struct {
		name  string
		from  BookingStatus
		to    BookingStatus
		actor Actor
	}{
		{"client cannot confirm", StatusPending, StatusConfirmed, ActorClient},
		{"partner cannot cancel as client", StatusPending, StatusCanceledByClient, ActorPartner},
		{"client cannot cancel in-progress", StatusInProgress, StatusCanceledByClient, ActorClient},
		{"no-show only from confirmed", StatusPending, StatusNoShow, ActorPartner},
		{"completed cannot restart", StatusCompleted, StatusInProgress, ActorPartner},
		{"canceled cannot be confirmed", StatusCanceledByClient, StatusConfirmed, ActorPartner},
		{"no-show is final", StatusNoShow, StatusConfirmed, ActorPartner},
		{"no skipping to in-progress from pending", StatusPending, StatusInProgress, ActorPartner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	terminal := []BookingStatus{
		StatusCompleted, StatusCanceledByClient, StatusCanceledByPartner, StatusNoShow,
	}
	all := []BookingStatus{
		StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCanceledByClient, StatusCanceledByPartner, StatusNoShow,
	}

	for _, from := range terminal {
		assert.True(t, IsTerminalStatus(from))
		for _, to := range all {
			for _, actor := range []Actor{ActorClient, ActorPartner} {
				assert.ErrorIs(t, CanTransition(from, to, actor), ErrInvalidTransition,
					"terminal %s must not transition to %s", from, to)
			}
		}
	}

	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusConfirmed))
	assert.False(t, IsTerminalStatus(StatusInProgress))
}

func TestAllowedTransitions(t *testing.T) {
	partnerFromConfirmed := AllowedTransitions(StatusConfirmed, ActorPartner)
	assert.ElementsMatch(t, []BookingStatus{
		StatusInProgress, StatusCompleted, StatusNoShow, StatusCanceledByPartner,
	}, partnerFromConfirmed)

	clientFromConfirmed := AllowedTransitions(StatusConfirmed, ActorClient)
	assert.ElementsMatch(t, []BookingStatus{StatusCanceledByClient}, clientFromConfirmed)

	assert.Empty(t, AllowedTransitions(StatusCompleted, ActorPartner))
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("canceled_by_client")
	assert.NoError(t, err)
	assert.Equal(t, StatusCanceledByClient, status)

	_, err = ParseBookingStatus("cancelled")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
