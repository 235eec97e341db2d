package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the current state of a booking in its lifecycle
type BookingStatus string

const (
	BookingPending             BookingStatus = "pending"
	BookingAccepted            BookingStatus = "accepted"
	BookingOngoing             BookingStatus = "ongoing"
	BookingCompleted           BookingStatus = "completed"
	BookingCancelled           BookingStatus = "cancelled"
	BookingWaitingVerification BookingStatus = "waiting_verification"
)

// BookingActorRole identifies who is requesting a status change
type BookingActorRole string

const (
	ActorProvider BookingActorRole = "provider"
	ActorCustomer BookingActorRole = "customer"
)

// transitionKey keys the transition table by current status and actor role
type transitionKey struct {
	from BookingStatus
	role BookingActorRole
}

// bookingTransitions is the role-gated state machine for bookings.
// waiting_verification has no entry: only payment verification moves it.
// completed and cancelled are terminal.
var bookingTransitions = map[transitionKey][]BookingStatus{
	{BookingPending, ActorProvider}:  {BookingAccepted, BookingCancelled},
	{BookingAccepted, ActorProvider}: {BookingOngoing},
	{BookingOngoing, ActorCustomer}:  {BookingCompleted},
}

// IsValid returns true if the status is a recognized booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingOngoing,
		BookingCompleted, BookingCancelled, BookingWaitingVerification:
		return true
	}
	return false
}

// IsTerminal returns true if no actor-driven transition leaves this status
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// CanTransition returns true if the given role may move a booking from
// status s to target
func (s BookingStatus) CanTransition(role BookingActorRole, target BookingStatus) bool {
	for _, allowed := range bookingTransitions[transitionKey{s, role}] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking represents a scheduled reservation of a service between a
// customer and a provider. Bookings are never deleted (audit trail).
type Booking struct {
	BaseModel
	ServiceID   uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_service_id" json:"service_id"`
	ProviderID  uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_provider_id" json:"provider_id"`
	CustomerID  uuid.UUID     `gorm:"type:uuid;not null;index:idx_bookings_customer_id" json:"customer_id"`
	ScheduledAt time.Time     `gorm:"type:timestamp;not null" json:"scheduled_at"`
	DurationMin int           `gorm:"not null" json:"duration_min"`
	Status      BookingStatus `gorm:"type:varchar(30);not null;default:'pending';index:idx_bookings_status" json:"status"`
	Payment     *Payment      `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}

// RoleOf returns the actor role the given user holds on this booking,
// or false if the user is neither provider nor customer.
func (b *Booking) RoleOf(userID uuid.UUID) (BookingActorRole, bool) {
	switch userID {
	case b.ProviderID:
		return ActorProvider, true
	case b.CustomerID:
		return ActorCustomer, true
	}
	return "", false
}

// TableName specifies the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}
