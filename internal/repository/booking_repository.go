package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByIDWithPayment(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error)
	FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error)
	// UpdateStatusIfCurrent is a compare-and-set on the status column:
	// the write only lands if the row still holds the expected current
	// status. Returns false when another writer got there first.
	UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus) (bool, error)
	// UpdateStatusAndPaymentIfCurrent is the same guarded status update
	// plus a save of the payment row, in one transaction. The payment is
	// untouched when the booking no longer holds the expected status.
	UpdateStatusAndPaymentIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus, payment *domain.Payment) (bool, error)
	FindStalePending(ctx context.Context, olderThan time.Time) ([]*domain.Booking, error)
}

// bookingRepositoryImpl is the GORM implementation of BookingRepository
type bookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a new instance of BookingRepository
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

// Create creates a new booking (and its payment row when preset)
func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a booking by its ID
func (r *bookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDWithPayment finds a booking with its payment preloaded
func (r *bookingRepositoryImpl) FindByIDWithPayment(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByCustomerID finds all bookings placed by a customer
func (r *bookingRepositoryImpl) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("customer_id = ?", customerID).
		Order("scheduled_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByProviderID finds all bookings addressed to a provider
func (r *bookingRepositoryImpl) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	if err := r.db.WithContext(ctx).
		Preload("Payment").
		Where("provider_id = ?", providerID).
		Order("scheduled_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusIfCurrent performs the guarded status update
func (r *bookingRepositoryImpl) UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, current).
		Update("status", target)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatusAndPaymentIfCurrent performs the guarded status update and
// the payment save atomically
func (r *bookingRepositoryImpl) UpdateStatusAndPaymentIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus, payment *domain.Payment) (bool, error) {
	won := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Booking{}).
			Where("id = ? AND status = ?", id, current).
			Update("status", target)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		won = true
		return nil
	})
	return won, err
}

// FindStalePending finds bookings still pending past the given cutoff
func (r *bookingRepositoryImpl) FindStalePending(ctx context.Context, olderThan time.Time) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", domain.BookingPending, olderThan).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
