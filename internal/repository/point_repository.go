package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// UserPointTotal is one aggregated leaderboard row
type UserPointTotal struct {
	UserID uuid.UUID `json:"user_id"`
	Total  int64     `json:"total"`
}

// PointRepository defines the interface for the points ledger
type PointRepository interface {
	Create(ctx context.Context, entry *domain.PointEntry) error
	SumByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	TopUsers(ctx context.Context, limit int) ([]UserPointTotal, error)
}

// pointRepositoryImpl is the GORM implementation of PointRepository
type pointRepositoryImpl struct {
	db *gorm.DB
}

// NewPointRepository creates a new instance of PointRepository
func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepositoryImpl{db: db}
}

// Create appends a ledger entry
func (r *pointRepositoryImpl) Create(ctx context.Context, entry *domain.PointEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// SumByUser returns the running total for a user
func (r *pointRepositoryImpl) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total *int64
	if err := r.db.WithContext(ctx).
		Model(&domain.PointEntry{}).
		Select("sum(amount)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// TopUsers aggregates the ledger into a ranked leaderboard. Used as the
// fallback when the Redis projection is unavailable.
func (r *pointRepositoryImpl) TopUsers(ctx context.Context, limit int) ([]UserPointTotal, error) {
	var rows []UserPointTotal
	if err := r.db.WithContext(ctx).
		Model(&domain.PointEntry{}).
		Select("user_id, sum(amount) as total").
		Group("user_id").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
