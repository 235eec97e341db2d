package domain

import "github.com/google/uuid"

// PaymentStatus represents the state of a booking's payment
type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentWaitingVerification PaymentStatus = "waiting_verification"
	PaymentCompleted           PaymentStatus = "completed"
	PaymentFailed              PaymentStatus = "failed"
)

// Payment is the monetary record owned one-to-one by a booking.
// ProofKey is the S3 object key of the uploaded proof-of-payment image.
type Payment struct {
	BaseModel
	BookingID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_payments_booking_id" json:"booking_id"`
	Amount    int64         `gorm:"not null" json:"amount"`
	Method    string        `gorm:"type:varchar(50)" json:"method"`
	Status    PaymentStatus `gorm:"type:varchar(30);not null;default:'pending';index:idx_payments_status" json:"status"`
	ProofKey  string        `gorm:"type:text" json:"proof_key"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
