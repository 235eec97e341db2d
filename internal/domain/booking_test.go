package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestBookingStatusCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    BookingStatus
		role    BookingActorRole
		to      BookingStatus
		allowed bool
	}{
		{"provider accepts pending", BookingPending, ActorProvider, BookingAccepted, true},
		{"provider cancels pending", BookingPending, ActorProvider, BookingCancelled, true},
		{"provider starts accepted", BookingAccepted, ActorProvider, BookingOngoing, true},
		{"customer completes ongoing", BookingOngoing, ActorCustomer, BookingCompleted, true},

		{"customer cannot accept pending", BookingPending, ActorCustomer, BookingAccepted, false},
		{"customer cannot cancel pending", BookingPending, ActorCustomer, BookingCancelled, false},
		{"customer cannot start accepted", BookingAccepted, ActorCustomer, BookingOngoing, false},
		{"provider cannot complete ongoing", BookingOngoing, ActorProvider, BookingCompleted, false},
		{"pending cannot skip to ongoing", BookingPending, ActorProvider, BookingOngoing, false},
		{"pending cannot skip to completed", BookingPending, ActorProvider, BookingCompleted, false},
		{"accepted cannot go back to pending", BookingAccepted, ActorProvider, BookingPending, false},
		{"waiting_verification is actor-locked", BookingWaitingVerification, ActorProvider, BookingAccepted, false},
		{"completed is terminal", BookingCompleted, ActorCustomer, BookingPending, false},
		{"cancelled is terminal", BookingCancelled, ActorProvider, BookingPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.role, tc.to))
		})
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.True(t, BookingCompleted.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingAccepted.IsTerminal())
	assert.False(t, BookingOngoing.IsTerminal())
	assert.False(t, BookingWaitingVerification.IsTerminal())
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{
		BookingPending, BookingAccepted, BookingOngoing,
		BookingCompleted, BookingCancelled, BookingWaitingVerification,
	} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

// Every allowed transition must leave a non-terminal status, land on a
// valid one, and never enter or leave waiting_verification, which only
// payment verification may touch.
func TestBookingTransitionTableSoundness(t *testing.T) {
	statuses := []BookingStatus{
		BookingPending, BookingAccepted, BookingOngoing,
		BookingCompleted, BookingCancelled, BookingWaitingVerification,
	}
	roles := []BookingActorRole{ActorProvider, ActorCustomer}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	properties.Property("allowed transitions are sound", prop.ForAll(
		func(fromIdx, roleIdx, toIdx int) bool {
			from := statuses[fromIdx]
			role := roles[roleIdx]
			to := statuses[toIdx]
			if !from.CanTransition(role, to) {
				return true
			}
			return !from.IsTerminal() &&
				to.IsValid() &&
				from != BookingWaitingVerification &&
				to != BookingWaitingVerification &&
				from != to
		},
		gen.IntRange(0, len(statuses)-1),
		gen.IntRange(0, 1),
		gen.IntRange(0, len(statuses)-1),
	))
	properties.TestingRun(t)
}

func TestBookingRoleOf(t *testing.T) {
	provider := uuid.New()
	customer := uuid.New()
	booking := &Booking{ProviderID: provider, CustomerID: customer}

	role, ok := booking.RoleOf(provider)
	assert.True(t, ok)
	assert.Equal(t, ActorProvider, role)

	role, ok = booking.RoleOf(customer)
	assert.True(t, ok)
	assert.Equal(t, ActorCustomer, role)

	_, ok = booking.RoleOf(uuid.New())
	assert.False(t, ok)
}
