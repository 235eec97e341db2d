package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/client"
	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// ResolutionService defines the interface for accepting a reply as a
// discussion's solution
type ResolutionService interface {
	Resolve(ctx context.Context, discussionID, replyID, actingUserID uuid.UUID) (*dto.DiscussionResponse, error)
}

// resolutionServiceImpl is the implementation of ResolutionService
type resolutionServiceImpl struct {
	discussionRepo repository.DiscussionRepository
	replyRepo      repository.ReplyRepository
	likeRepo       repository.LikeRepository
	pointsService  PointsService
	notifier       client.NotificationClient
	rewardAmount   int
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewResolutionService creates a new instance of ResolutionService
func NewResolutionService(
	discussionRepo repository.DiscussionRepository,
	replyRepo repository.ReplyRepository,
	likeRepo repository.LikeRepository,
	pointsService PointsService,
	notifier client.NotificationClient,
	rewardAmount int,
	m *metrics.Metrics,
	logger *zap.Logger,
) ResolutionService {
	return &resolutionServiceImpl{
		discussionRepo: discussionRepo,
		replyRepo:      replyRepo,
		likeRepo:       likeRepo,
		pointsService:  pointsService,
		notifier:       notifier,
		rewardAmount:   rewardAmount,
		metrics:        m,
		logger:         logger,
	}
}

// Resolve marks a reply as the accepted solution of its discussion.
// Only the discussion author may resolve, never onto their own reply.
// Resolving the same reply again is an idempotent success; resolving a
// different reply after one is accepted is rejected. The write is a
// guarded single-statement update, so two concurrent resolve calls for
// different replies cannot both win.
func (s *resolutionServiceImpl) Resolve(ctx context.Context, discussionID, replyID, actingUserID uuid.UUID) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Discussion not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch discussion", err.Error())
	}

	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Reply not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch reply", err.Error())
	}
	if reply.DiscussionID != discussionID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Reply does not belong to this discussion", "")
	}

	if discussion.AuthorID != actingUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the discussion author may accept a solution", "")
	}
	if reply.AuthorID == actingUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Cannot accept your own reply as the solution", "")
	}

	if discussion.ResolvedReplyID != nil && *discussion.ResolvedReplyID != replyID {
		return nil, response.NewAppError(response.ErrCodeAlreadyResolved, "Discussion is already resolved to another reply", "")
	}

	firstResolution := discussion.ResolvedReplyID == nil

	ok, err := s.discussionRepo.ResolveReply(ctx, discussionID, replyID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to resolve discussion", err.Error())
	}
	if !ok {
		// A concurrent resolve landed a different reply between our read
		// and the guarded write.
		return nil, response.NewAppError(response.ErrCodeAlreadyResolved, "Discussion is already resolved to another reply", "")
	}

	if firstResolution {
		if err := s.pointsService.Award(ctx, reply.AuthorID, s.rewardAmount, domain.PointReasonReplyResolved, "reply", &replyID); err != nil {
			// The resolution itself stands; the ledger write is retried by
			// operations, not by the caller.
			s.logger.Error("Failed to award resolution points",
				zap.String("discussion_id", discussionID.String()),
				zap.String("reply_id", replyID.String()),
				zap.Error(err))
		} else if s.notifier != nil {
			if err := s.notifier.SendNotification(ctx, client.NotificationEvent{
				Type:         client.NotificationPointsAwarded,
				ActorID:      actingUserID,
				TargetUserID: reply.AuthorID,
				ResourceType: "reply",
				ResourceID:   replyID,
				Metadata: map[string]interface{}{
					"points": s.rewardAmount,
					"reason": string(domain.PointReasonReplyResolved),
				},
			}); err != nil {
				s.logger.Warn("Failed to send points notification", zap.Error(err))
			}
		}

		if s.notifier != nil {
			if err := s.notifier.SendNotification(ctx, client.NotificationEvent{
				Type:         client.NotificationReplyResolved,
				ActorID:      actingUserID,
				TargetUserID: reply.AuthorID,
				ResourceType: "discussion",
				ResourceID:   discussionID,
				Metadata: map[string]interface{}{
					"replyId": replyID.String(),
					"points":  s.rewardAmount,
				},
			}); err != nil {
				s.logger.Warn("Failed to send resolution notification", zap.Error(err))
			}
		}

		if s.metrics != nil {
			s.metrics.IncrementDiscussionResolved()
		}
	}

	updated, err := s.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload discussion", err.Error())
	}

	likeCount, err := s.likeRepo.CountByEntity(ctx, domain.LikeEntityDiscussion, discussionID)
	if err != nil {
		s.logger.Warn("Failed to count discussion likes", zap.Error(err))
	}

	return &dto.DiscussionResponse{
		DiscussionID:    updated.ID,
		StageID:         updated.StageID,
		AuthorID:        updated.AuthorID,
		Content:         updated.Content,
		Resolved:        updated.Resolved,
		ResolvedReplyID: updated.ResolvedReplyID,
		LikeCount:       likeCount,
		CreatedAt:       updated.CreatedAt,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}
