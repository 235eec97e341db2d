package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// ReplyRepository defines the interface for reply data access
type ReplyRepository interface {
	Create(ctx context.Context, reply *domain.Reply) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error)
	FindByDiscussionID(ctx context.Context, discussionID uuid.UUID) ([]*domain.Reply, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// replyRepositoryImpl is the GORM implementation of ReplyRepository
type replyRepositoryImpl struct {
	db *gorm.DB
}

// NewReplyRepository creates a new instance of ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepositoryImpl{db: db}
}

// Create creates a new reply
func (r *replyRepositoryImpl) Create(ctx context.Context, reply *domain.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a reply by its ID
func (r *replyRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
	var reply domain.Reply
	if err := r.db.WithContext(ctx).First(&reply, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// FindByDiscussionID finds all replies of a discussion in creation order
func (r *replyRepositoryImpl) FindByDiscussionID(ctx context.Context, discussionID uuid.UUID) ([]*domain.Reply, error) {
	var replies []*domain.Reply
	if err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// Delete removes a reply by ID
func (r *replyRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Reply{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}
