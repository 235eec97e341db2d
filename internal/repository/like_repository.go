package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// LikeRepository defines the interface for like data access
type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	FindByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error)
	DeleteByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (bool, error)
	CountByEntity(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error)
	CountByEntities(ctx context.Context, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ExistsByUserAndEntities(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// likeRepositoryImpl is the GORM implementation of LikeRepository
type likeRepositoryImpl struct {
	db *gorm.DB
}

// NewLikeRepository creates a new instance of LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepositoryImpl{db: db}
}

// Create inserts a like row. The unique index on (user_id, entity_type,
// entity_id) rejects a duplicate insert from a concurrent toggle.
func (r *likeRepositoryImpl) Create(ctx context.Context, like *domain.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return err
	}
	return nil
}

// FindByUserAndEntity finds a like row for a (user, entity) pair
func (r *likeRepositoryImpl) FindByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error) {
	var like domain.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).
		First(&like).Error; err != nil {
		return nil, err
	}
	return &like, nil
}

// DeleteByUserAndEntity removes a like row. Returns false if no row existed.
func (r *likeRepositoryImpl) DeleteByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND entity_type = ? AND entity_id = ?", userID, entityType, entityID).
		Delete(&domain.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByEntity counts likes for a single entity
func (r *likeRepositoryImpl) CountByEntity(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByEntities counts likes for multiple entities in one query
func (r *likeRepositoryImpl) CountByEntities(ctx context.Context, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(entityIDs))
	if len(entityIDs) == 0 {
		return counts, nil
	}

	type row struct {
		EntityID uuid.UUID
		Total    int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Select("entity_id, count(*) as total").
		Where("entity_type = ? AND entity_id IN ?", entityType, entityIDs).
		Group("entity_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rec := range rows {
		counts[rec.EntityID] = rec.Total
	}
	return counts, nil
}

// ExistsByUserAndEntities reports which of the given entities the user has liked
func (r *likeRepositoryImpl) ExistsByUserAndEntities(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(entityIDs))
	if len(entityIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Select("entity_id").
		Where("user_id = ? AND entity_type = ? AND entity_id IN ?", userID, entityType, entityIDs).
		Scan(&ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
