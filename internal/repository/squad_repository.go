package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// SquadRepository defines the interface for squad data access
type SquadRepository interface {
	Create(ctx context.Context, squad *domain.Squad) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Squad, error)
	FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*domain.Squad, error)
	FindAll(ctx context.Context) ([]*domain.Squad, error)
	CreateMember(ctx context.Context, member *domain.SquadMember) error
	FindMember(ctx context.Context, squadID, userID uuid.UUID) (*domain.SquadMember, error)
	DeleteMember(ctx context.Context, squadID, userID uuid.UUID) error
	CountMembers(ctx context.Context, squadID uuid.UUID) (int64, error)
}

// squadRepositoryImpl is the GORM implementation of SquadRepository
type squadRepositoryImpl struct {
	db *gorm.DB
}

// NewSquadRepository creates a new instance of SquadRepository
func NewSquadRepository(db *gorm.DB) SquadRepository {
	return &squadRepositoryImpl{db: db}
}

// Create creates a new squad
func (r *squadRepositoryImpl) Create(ctx context.Context, squad *domain.Squad) error {
	if err := r.db.WithContext(ctx).Create(squad).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a squad by its ID
func (r *squadRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Squad, error) {
	var squad domain.Squad
	if err := r.db.WithContext(ctx).First(&squad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &squad, nil
}

// FindByIDWithMembers finds a squad with members preloaded
func (r *squadRepositoryImpl) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*domain.Squad, error) {
	var squad domain.Squad
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&squad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &squad, nil
}

// FindAll lists all squads, newest first
func (r *squadRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Squad, error) {
	var squads []*domain.Squad
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&squads).Error; err != nil {
		return nil, err
	}
	return squads, nil
}

// CreateMember adds a member to a squad
func (r *squadRepositoryImpl) CreateMember(ctx context.Context, member *domain.SquadMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return err
	}
	return nil
}

// FindMember finds a squad membership row
func (r *squadRepositoryImpl) FindMember(ctx context.Context, squadID, userID uuid.UUID) (*domain.SquadMember, error) {
	var member domain.SquadMember
	if err := r.db.WithContext(ctx).
		Where("squad_id = ? AND user_id = ?", squadID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteMember removes a member from a squad
func (r *squadRepositoryImpl) DeleteMember(ctx context.Context, squadID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("squad_id = ? AND user_id = ?", squadID, userID).
		Delete(&domain.SquadMember{}).Error; err != nil {
		return err
	}
	return nil
}

// CountMembers counts the members of a squad
func (r *squadRepositoryImpl) CountMembers(ctx context.Context, squadID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.SquadMember{}).
		Where("squad_id = ?", squadID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
