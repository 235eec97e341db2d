package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest represents the request to book a service
type CreateBookingRequest struct {
	ServiceID   uuid.UUID `json:"serviceId" binding:"required"`
	ProviderID  uuid.UUID `json:"providerId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required,min=1"`
	Amount      int64     `json:"amount" binding:"required,min=1"`
}

// TransitionBookingRequest represents the request to move a booking to a new status
type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

// VerifyPaymentRequest represents the admin decision on an uploaded payment proof
type VerifyPaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// PaymentResponse represents the payment response
type PaymentResponse struct {
	PaymentID uuid.UUID `json:"paymentId"`
	BookingID uuid.UUID `json:"bookingId"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	ProofURL  string    `json:"proofUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingResponse represents the booking response
type BookingResponse struct {
	BookingID   uuid.UUID        `json:"bookingId"`
	ServiceID   uuid.UUID        `json:"serviceId"`
	ProviderID  uuid.UUID        `json:"providerId"`
	CustomerID  uuid.UUID        `json:"customerId"`
	ScheduledAt time.Time        `json:"scheduledAt"`
	DurationMin int              `json:"durationMin"`
	Status      string           `json:"status"`
	Payment     *PaymentResponse `json:"payment,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}
