package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// CreationRepository defines the interface for creation showcase data access
type CreationRepository interface {
	Create(ctx context.Context, creation *domain.Creation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Creation, error)
	FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Creation, error)
	FindAll(ctx context.Context) ([]*domain.Creation, error)
	CreateComment(ctx context.Context, comment *domain.CreationComment) error
	FindCommentByID(ctx context.Context, id uuid.UUID) (*domain.CreationComment, error)
}

// creationRepositoryImpl is the GORM implementation of CreationRepository
type creationRepositoryImpl struct {
	db *gorm.DB
}

// NewCreationRepository creates a new instance of CreationRepository
func NewCreationRepository(db *gorm.DB) CreationRepository {
	return &creationRepositoryImpl{db: db}
}

// Create creates a new creation
func (r *creationRepositoryImpl) Create(ctx context.Context, creation *domain.Creation) error {
	if err := r.db.WithContext(ctx).Create(creation).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a creation by its ID
func (r *creationRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Creation, error) {
	var creation domain.Creation
	if err := r.db.WithContext(ctx).First(&creation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &creation, nil
}

// FindByIDWithComments finds a creation with comments in creation order
func (r *creationRepositoryImpl) FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Creation, error) {
	var creation domain.Creation
	if err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&creation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &creation, nil
}

// FindAll lists all creations, newest first
func (r *creationRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Creation, error) {
	var creations []*domain.Creation
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&creations).Error; err != nil {
		return nil, err
	}
	return creations, nil
}

// CreateComment creates a comment on a creation
func (r *creationRepositoryImpl) CreateComment(ctx context.Context, comment *domain.CreationComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindCommentByID finds a creation comment by its ID
func (r *creationRepositoryImpl) FindCommentByID(ctx context.Context, id uuid.UUID) (*domain.CreationComment, error) {
	var comment domain.CreationComment
	if err := r.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}
