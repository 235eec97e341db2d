package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/client"
	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// CreationService defines the interface for creation showcase business logic
type CreationService interface {
	CreateCreation(ctx context.Context, authorID uuid.UUID, req *dto.CreateCreationRequest, image io.Reader, fileName, contentType string) (*dto.CreationResponse, error)
	GetCreation(ctx context.Context, creationID, viewerID uuid.UUID) (*dto.CreationDetailResponse, error)
	ListCreations(ctx context.Context, viewerID uuid.UUID) ([]*dto.CreationResponse, error)
	AddComment(ctx context.Context, creationID, authorID uuid.UUID, req *dto.CreateCreationCommentRequest) (*dto.CreationCommentResponse, error)
}

// creationServiceImpl is the implementation of CreationService
type creationServiceImpl struct {
	creationRepo repository.CreationRepository
	likeRepo     repository.LikeRepository
	s3Client     client.S3ClientInterface
	logger       *zap.Logger
}

// NewCreationService creates a new instance of CreationService
func NewCreationService(
	creationRepo repository.CreationRepository,
	likeRepo repository.LikeRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) CreationService {
	return &creationServiceImpl{
		creationRepo: creationRepo,
		likeRepo:     likeRepo,
		s3Client:     s3Client,
		logger:       logger,
	}
}

// CreateCreation stores the showcase image and creates the creation.
// The image is optional.
func (s *creationServiceImpl) CreateCreation(ctx context.Context, authorID uuid.UUID, req *dto.CreateCreationRequest, image io.Reader, fileName, contentType string) (*dto.CreationResponse, error) {
	imageKey := ""
	if image != nil {
		key, err := s.s3Client.GenerateFileKey("creations", fileName)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid image file", err.Error())
		}
		if _, err := s.s3Client.UploadFile(ctx, key, image, contentType); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store image", err.Error())
		}
		imageKey = key
	}

	creation := &domain.Creation{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		ImageKey:    imageKey,
		LinkURL:     req.LinkURL,
	}
	if err := s.creationRepo.Create(ctx, creation); err != nil {
		if imageKey != "" {
			if delErr := s.s3Client.DeleteFile(ctx, imageKey); delErr != nil {
				s.logger.Warn("Failed to delete orphaned image", zap.String("key", imageKey), zap.Error(delErr))
			}
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create creation", err.Error())
	}

	return s.toCreationResponse(creation, 0, false), nil
}

// GetCreation returns a creation with its comments, like counts and the
// viewer's like state
func (s *creationServiceImpl) GetCreation(ctx context.Context, creationID, viewerID uuid.UUID) (*dto.CreationDetailResponse, error) {
	creation, err := s.creationRepo.FindByIDWithComments(ctx, creationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Creation not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch creation", err.Error())
	}

	likeCount, err := s.likeRepo.CountByEntity(ctx, domain.LikeEntityCreation, creation.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	liked, err := s.likeRepo.FindByUserAndEntity(ctx, viewerID, domain.LikeEntityCreation, creation.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch like state", err.Error())
	}

	commentIDs := make([]uuid.UUID, len(creation.Comments))
	for i, comment := range creation.Comments {
		commentIDs[i] = comment.ID
	}
	commentCounts, err := s.likeRepo.CountByEntities(ctx, domain.LikeEntityCreationComment, commentIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count comment likes", err.Error())
	}
	commentLiked, err := s.likeRepo.ExistsByUserAndEntities(ctx, viewerID, domain.LikeEntityCreationComment, commentIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment like state", err.Error())
	}

	comments := make([]dto.CreationCommentResponse, len(creation.Comments))
	for i, comment := range creation.Comments {
		comments[i] = dto.CreationCommentResponse{
			CommentID:  comment.ID,
			CreationID: comment.CreationID,
			AuthorID:   comment.AuthorID,
			Content:    comment.Content,
			LikeCount:  commentCounts[comment.ID],
			IsLiked:    commentLiked[comment.ID],
			CreatedAt:  comment.CreatedAt,
		}
	}

	return &dto.CreationDetailResponse{
		CreationResponse: *s.toCreationResponse(creation, likeCount, liked != nil),
		Comments:         comments,
	}, nil
}

// ListCreations lists the showcase, newest first, with like counts
func (s *creationServiceImpl) ListCreations(ctx context.Context, viewerID uuid.UUID) ([]*dto.CreationResponse, error) {
	creations, err := s.creationRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch creations", err.Error())
	}

	ids := make([]uuid.UUID, len(creations))
	for i, c := range creations {
		ids[i] = c.ID
	}
	counts, err := s.likeRepo.CountByEntities(ctx, domain.LikeEntityCreation, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	liked, err := s.likeRepo.ExistsByUserAndEntities(ctx, viewerID, domain.LikeEntityCreation, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch like state", err.Error())
	}

	responses := make([]*dto.CreationResponse, len(creations))
	for i, c := range creations {
		responses[i] = s.toCreationResponse(c, counts[c.ID], liked[c.ID])
	}
	return responses, nil
}

// AddComment posts a comment on a creation
func (s *creationServiceImpl) AddComment(ctx context.Context, creationID, authorID uuid.UUID, req *dto.CreateCreationCommentRequest) (*dto.CreationCommentResponse, error) {
	if _, err := s.creationRepo.FindByID(ctx, creationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Creation not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch creation", err.Error())
	}

	comment := &domain.CreationComment{
		CreationID: creationID,
		AuthorID:   authorID,
		Content:    req.Content,
	}
	if err := s.creationRepo.CreateComment(ctx, comment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	return &dto.CreationCommentResponse{
		CommentID:  comment.ID,
		CreationID: comment.CreationID,
		AuthorID:   comment.AuthorID,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// toCreationResponse converts domain.Creation to dto.CreationResponse
func (s *creationServiceImpl) toCreationResponse(creation *domain.Creation, likeCount int64, isLiked bool) *dto.CreationResponse {
	imageURL := ""
	if creation.ImageKey != "" && s.s3Client != nil {
		imageURL = s.s3Client.GetFileURL(creation.ImageKey)
	}
	return &dto.CreationResponse{
		CreationID:  creation.ID,
		AuthorID:    creation.AuthorID,
		Title:       creation.Title,
		Description: creation.Description,
		ImageURL:    imageURL,
		LinkURL:     creation.LinkURL,
		LikeCount:   likeCount,
		IsLiked:     isLiked,
		CreatedAt:   creation.CreatedAt,
		UpdatedAt:   creation.UpdatedAt,
	}
}
