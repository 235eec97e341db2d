package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	Update(ctx context.Context, payment *domain.Payment) error
}

// paymentRepositoryImpl is the GORM implementation of PaymentRepository
type paymentRepositoryImpl struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

// Create creates a new payment
func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *domain.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return err
	}
	return nil
}

// FindByBookingID finds the payment owned by a booking
func (r *paymentRepositoryImpl) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Update saves the payment row
func (r *paymentRepositoryImpl) Update(ctx context.Context, payment *domain.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return err
	}
	return nil
}
