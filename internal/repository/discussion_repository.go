package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// DiscussionRepository defines the interface for discussion data access
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *domain.Discussion) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	FindByIDWithReplies(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	FindByStageID(ctx context.Context, stageID uuid.UUID) ([]*domain.Discussion, error)
	// ResolveReply sets the resolved reply in a single guarded update. It
	// succeeds only while the discussion is unresolved or already resolved
	// to the same reply, so two concurrent calls cannot both win with
	// different replies. Returns false when the guard rejected the write.
	ResolveReply(ctx context.Context, discussionID, replyID uuid.UUID) (bool, error)
}

// discussionRepositoryImpl is the GORM implementation of DiscussionRepository
type discussionRepositoryImpl struct {
	db *gorm.DB
}

// NewDiscussionRepository creates a new instance of DiscussionRepository
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepositoryImpl{db: db}
}

// Create creates a new discussion
func (r *discussionRepositoryImpl) Create(ctx context.Context, discussion *domain.Discussion) error {
	if err := r.db.WithContext(ctx).Create(discussion).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a discussion by its ID
func (r *discussionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	var discussion domain.Discussion
	if err := r.db.WithContext(ctx).First(&discussion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

// FindByIDWithReplies finds a discussion with its replies preloaded in creation order
func (r *discussionRepositoryImpl) FindByIDWithReplies(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	var discussion domain.Discussion
	if err := r.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&discussion, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

// FindByStageID finds all discussions attached to a course stage
func (r *discussionRepositoryImpl) FindByStageID(ctx context.Context, stageID uuid.UUID) ([]*domain.Discussion, error) {
	var discussions []*domain.Discussion
	if err := r.db.WithContext(ctx).
		Where("stage_id = ?", stageID).
		Order("created_at DESC").
		Find(&discussions).Error; err != nil {
		return nil, err
	}
	return discussions, nil
}

// ResolveReply performs the guarded resolution update
func (r *discussionRepositoryImpl) ResolveReply(ctx context.Context, discussionID, replyID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Discussion{}).
		Where("id = ? AND (resolved_reply_id IS NULL OR resolved_reply_id = ?)", discussionID, replyID).
		Updates(map[string]interface{}{
			"resolved":          true,
			"resolved_reply_id": replyID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
