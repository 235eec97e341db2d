package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// CourseRepository defines the interface for course and stage data access
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	FindByIDWithStages(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	FindAll(ctx context.Context) ([]*domain.Course, error)
	CreateStage(ctx context.Context, stage *domain.CourseStage) error
	FindStageByID(ctx context.Context, id uuid.UUID) (*domain.CourseStage, error)
	NextStagePosition(ctx context.Context, courseID uuid.UUID) (int, error)
}

// courseRepositoryImpl is the GORM implementation of CourseRepository
type courseRepositoryImpl struct {
	db *gorm.DB
}

// NewCourseRepository creates a new instance of CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepositoryImpl{db: db}
}

// Create creates a new course
func (r *courseRepositoryImpl) Create(ctx context.Context, course *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return err
	}
	return nil
}

// Update saves course changes
func (r *courseRepositoryImpl) Update(ctx context.Context, course *domain.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a course by its ID
func (r *courseRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDWithStages finds a course with stages ordered by position
func (r *courseRepositoryImpl) FindByIDWithStages(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// FindAll lists all courses, newest first
func (r *courseRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Course, error) {
	var courses []*domain.Course
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// CreateStage creates a new course stage
func (r *courseRepositoryImpl) CreateStage(ctx context.Context, stage *domain.CourseStage) error {
	if err := r.db.WithContext(ctx).Create(stage).Error; err != nil {
		return err
	}
	return nil
}

// FindStageByID finds a course stage by its ID
func (r *courseRepositoryImpl) FindStageByID(ctx context.Context, id uuid.UUID) (*domain.CourseStage, error) {
	var stage domain.CourseStage
	if err := r.db.WithContext(ctx).First(&stage, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stage, nil
}

// NextStagePosition returns the next free position within a course
func (r *courseRepositoryImpl) NextStagePosition(ctx context.Context, courseID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&domain.CourseStage{}).
		Select("max(position)").
		Where("course_id = ?", courseID).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}
