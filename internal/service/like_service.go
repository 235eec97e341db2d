package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// LikeService defines the interface for like toggle business logic
type LikeService interface {
	ToggleLike(ctx context.Context, entityType domain.LikeEntityType, entityID, userID uuid.UUID) (*dto.LikeToggleResponse, error)
}

// likeServiceImpl is the implementation of LikeService
type likeServiceImpl struct {
	likeRepo       repository.LikeRepository
	discussionRepo repository.DiscussionRepository
	replyRepo      repository.ReplyRepository
	creationRepo   repository.CreationRepository
	metrics        *metrics.Metrics
}

// NewLikeService creates a new instance of LikeService
func NewLikeService(
	likeRepo repository.LikeRepository,
	discussionRepo repository.DiscussionRepository,
	replyRepo repository.ReplyRepository,
	creationRepo repository.CreationRepository,
	m *metrics.Metrics,
) LikeService {
	return &likeServiceImpl{
		likeRepo:       likeRepo,
		discussionRepo: discussionRepo,
		replyRepo:      replyRepo,
		creationRepo:   creationRepo,
		metrics:        m,
	}
}

// ToggleLike flips the caller's like on an entity and returns the new
// liked-state plus the recomputed count. The delete-or-insert is guarded
// by the unique index on (user, entity_type, entity_id): a duplicate
// insert from a concurrent double toggle is read back as "already liked".
func (s *likeServiceImpl) ToggleLike(ctx context.Context, entityType domain.LikeEntityType, entityID, userID uuid.UUID) (*dto.LikeToggleResponse, error) {
	if !entityType.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid like target type", string(entityType))
	}

	if err := s.verifyEntityExists(ctx, entityType, entityID); err != nil {
		return nil, err
	}

	existing, err := s.likeRepo.FindByUserAndEntity(ctx, userID, entityType, entityID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up like state", err.Error())
	}

	var isLiked bool
	if existing != nil {
		// Unlike. A zero-row delete means a concurrent toggle already
		// removed it, which lands in the same state.
		if _, err := s.likeRepo.DeleteByUserAndEntity(ctx, userID, entityType, entityID); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to remove like", err.Error())
		}
		isLiked = false
	} else {
		like := &domain.Like{
			UserID:     userID,
			EntityType: entityType,
			EntityID:   entityID,
		}
		if err := s.likeRepo.Create(ctx, like); err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				// Concurrent toggle won the insert; the row exists.
				isLiked = true
			} else {
				return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create like", err.Error())
			}
		} else {
			isLiked = true
		}
	}

	count, err := s.likeRepo.CountByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementLikeToggled(string(entityType), isLiked)
	}

	return &dto.LikeToggleResponse{
		IsLiked:   isLiked,
		LikeCount: count,
	}, nil
}

// verifyEntityExists checks that the like target exists
func (s *likeServiceImpl) verifyEntityExists(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) error {
	var err error
	switch entityType {
	case domain.LikeEntityDiscussion:
		_, err = s.discussionRepo.FindByID(ctx, entityID)
	case domain.LikeEntityReply:
		_, err = s.replyRepo.FindByID(ctx, entityID)
	case domain.LikeEntityCreation:
		_, err = s.creationRepo.FindByID(ctx, entityID)
	case domain.LikeEntityCreationComment:
		_, err = s.creationRepo.FindCommentByID(ctx, entityID)
	default:
		return response.NewAppError(response.ErrCodeValidation, "Invalid like target type", string(entityType))
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Like target not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify like target", err.Error())
	}
	return nil
}
