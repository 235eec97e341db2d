package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// CourseService defines the interface for course business logic
type CourseService interface {
	CreateCourse(ctx context.Context, authorID uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*dto.CourseDetailResponse, error)
	ListCourses(ctx context.Context) ([]*dto.CourseResponse, error)
	AddStage(ctx context.Context, courseID, actingUserID uuid.UUID, req *dto.AddStageRequest) (*dto.StageResponse, error)
	PublishCourse(ctx context.Context, courseID, actingUserID uuid.UUID) (*dto.CourseResponse, error)
}

// courseServiceImpl is the implementation of CourseService
type courseServiceImpl struct {
	courseRepo repository.CourseRepository
	logger     *zap.Logger
}

// NewCourseService creates a new instance of CourseService
func NewCourseService(courseRepo repository.CourseRepository, logger *zap.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

// CreateCourse creates an unpublished course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, authorID uuid.UUID, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &domain.Course{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create course", err.Error())
	}
	return s.toCourseResponse(course), nil
}

// GetCourse returns a course with its stages in position order
func (s *courseServiceImpl) GetCourse(ctx context.Context, courseID uuid.UUID) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.FindByIDWithStages(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch course", err.Error())
	}

	stages := make([]dto.StageResponse, len(course.Stages))
	for i, stage := range course.Stages {
		stages[i] = s.toStageResponse(&stage)
	}

	return &dto.CourseDetailResponse{
		CourseResponse: *s.toCourseResponse(course),
		Stages:         stages,
	}, nil
}

// ListCourses lists all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.courseRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch courses", err.Error())
	}
	responses := make([]*dto.CourseResponse, len(courses))
	for i, course := range courses {
		responses[i] = s.toCourseResponse(course)
	}
	return responses, nil
}

// AddStage appends a stage to the end of a course. Only the course author
// may add stages.
func (s *courseServiceImpl) AddStage(ctx context.Context, courseID, actingUserID uuid.UUID, req *dto.AddStageRequest) (*dto.StageResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch course", err.Error())
	}
	if course.AuthorID != actingUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the course author may add stages", "")
	}

	position, err := s.courseRepo.NextStagePosition(ctx, courseID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to determine stage position", err.Error())
	}

	var meta datatypes.JSON
	if req.Meta != nil {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid stage metadata", err.Error())
		}
		meta = raw
	}

	stage := &domain.CourseStage{
		CourseID: courseID,
		Position: position,
		Title:    req.Title,
		Content:  req.Content,
		Meta:     meta,
	}
	if err := s.courseRepo.CreateStage(ctx, stage); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create stage", err.Error())
	}

	resp := s.toStageResponse(stage)
	return &resp, nil
}

// PublishCourse marks a course visible to learners. Author only.
func (s *courseServiceImpl) PublishCourse(ctx context.Context, courseID, actingUserID uuid.UUID) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch course", err.Error())
	}
	if course.AuthorID != actingUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the course author may publish it", "")
	}

	course.IsPublished = true
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to publish course", err.Error())
	}
	return s.toCourseResponse(course), nil
}

// toCourseResponse converts domain.Course to dto.CourseResponse
func (s *courseServiceImpl) toCourseResponse(course *domain.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		CourseID:    course.ID,
		AuthorID:    course.AuthorID,
		Title:       course.Title,
		Description: course.Description,
		CoverURL:    course.CoverURL,
		IsPublished: course.IsPublished,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}

// toStageResponse converts domain.CourseStage to dto.StageResponse
func (s *courseServiceImpl) toStageResponse(stage *domain.CourseStage) dto.StageResponse {
	var meta map[string]interface{}
	if len(stage.Meta) > 0 {
		if err := json.Unmarshal(stage.Meta, &meta); err != nil {
			s.logger.Warn("Failed to decode stage metadata",
				zap.String("stage_id", stage.ID.String()),
				zap.Error(err))
		}
	}
	return dto.StageResponse{
		StageID:   stage.ID,
		CourseID:  stage.CourseID,
		Position:  stage.Position,
		Title:     stage.Title,
		Content:   stage.Content,
		Meta:      meta,
		CreatedAt: stage.CreatedAt,
	}
}
