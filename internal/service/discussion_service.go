package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// DiscussionService defines the interface for discussion business logic
type DiscussionService interface {
	CreateDiscussion(ctx context.Context, authorID uuid.UUID, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error)
	GetDiscussion(ctx context.Context, discussionID, viewerID uuid.UUID) (*dto.DiscussionDetailResponse, error)
	GetDiscussionsByStage(ctx context.Context, stageID, viewerID uuid.UUID) ([]*dto.DiscussionResponse, error)
	CreateReply(ctx context.Context, discussionID, authorID uuid.UUID, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, replyID, actingUserID uuid.UUID) error
}

// discussionServiceImpl is the implementation of DiscussionService
type discussionServiceImpl struct {
	discussionRepo repository.DiscussionRepository
	replyRepo      repository.ReplyRepository
	likeRepo       repository.LikeRepository
	courseRepo     repository.CourseRepository
	logger         *zap.Logger
}

// NewDiscussionService creates a new instance of DiscussionService
func NewDiscussionService(
	discussionRepo repository.DiscussionRepository,
	replyRepo repository.ReplyRepository,
	likeRepo repository.LikeRepository,
	courseRepo repository.CourseRepository,
	logger *zap.Logger,
) DiscussionService {
	return &discussionServiceImpl{
		discussionRepo: discussionRepo,
		replyRepo:      replyRepo,
		likeRepo:       likeRepo,
		courseRepo:     courseRepo,
		logger:         logger,
	}
}

// CreateDiscussion opens a discussion on an existing course stage
func (s *discussionServiceImpl) CreateDiscussion(ctx context.Context, authorID uuid.UUID, req *dto.CreateDiscussionRequest) (*dto.DiscussionResponse, error) {
	if _, err := s.courseRepo.FindStageByID(ctx, req.StageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Course stage not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch course stage", err.Error())
	}

	discussion := &domain.Discussion{
		StageID:  req.StageID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create discussion", err.Error())
	}

	return s.toDiscussionResponse(discussion, 0, false), nil
}

// GetDiscussion returns a discussion with its reply thread, like counts and
// the viewer's like state
func (s *discussionServiceImpl) GetDiscussion(ctx context.Context, discussionID, viewerID uuid.UUID) (*dto.DiscussionDetailResponse, error) {
	discussion, err := s.discussionRepo.FindByIDWithReplies(ctx, discussionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Discussion not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch discussion", err.Error())
	}

	likeCount, err := s.likeRepo.CountByEntity(ctx, domain.LikeEntityDiscussion, discussion.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	liked, err := s.likeRepo.FindByUserAndEntity(ctx, viewerID, domain.LikeEntityDiscussion, discussion.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch like state", err.Error())
	}

	replyIDs := make([]uuid.UUID, len(discussion.Replies))
	for i, reply := range discussion.Replies {
		replyIDs[i] = reply.ID
	}
	replyCounts, err := s.likeRepo.CountByEntities(ctx, domain.LikeEntityReply, replyIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count reply likes", err.Error())
	}
	replyLiked, err := s.likeRepo.ExistsByUserAndEntities(ctx, viewerID, domain.LikeEntityReply, replyIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch reply like state", err.Error())
	}

	replies := make([]dto.ReplyResponse, len(discussion.Replies))
	for i, reply := range discussion.Replies {
		resolved := discussion.ResolvedReplyID != nil && *discussion.ResolvedReplyID == reply.ID
		replies[i] = dto.ReplyResponse{
			ReplyID:       reply.ID,
			DiscussionID:  reply.DiscussionID,
			ParentReplyID: reply.ParentReplyID,
			AuthorID:      reply.AuthorID,
			Content:       reply.Content,
			Resolved:      resolved,
			LikeCount:     replyCounts[reply.ID],
			IsLiked:       replyLiked[reply.ID],
			CreatedAt:     reply.CreatedAt,
		}
	}

	return &dto.DiscussionDetailResponse{
		DiscussionResponse: *s.toDiscussionResponse(discussion, likeCount, liked != nil),
		Replies:            replies,
	}, nil
}

// GetDiscussionsByStage lists a stage's discussions with like counts
func (s *discussionServiceImpl) GetDiscussionsByStage(ctx context.Context, stageID, viewerID uuid.UUID) ([]*dto.DiscussionResponse, error) {
	discussions, err := s.discussionRepo.FindByStageID(ctx, stageID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch discussions", err.Error())
	}

	ids := make([]uuid.UUID, len(discussions))
	for i, d := range discussions {
		ids[i] = d.ID
	}
	counts, err := s.likeRepo.CountByEntities(ctx, domain.LikeEntityDiscussion, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count likes", err.Error())
	}
	liked, err := s.likeRepo.ExistsByUserAndEntities(ctx, viewerID, domain.LikeEntityDiscussion, ids)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch like state", err.Error())
	}

	responses := make([]*dto.DiscussionResponse, len(discussions))
	for i, d := range discussions {
		responses[i] = s.toDiscussionResponse(d, counts[d.ID], liked[d.ID])
	}
	return responses, nil
}

// CreateReply adds a reply to a discussion, optionally nested under a
// parent reply of the same discussion
func (s *discussionServiceImpl) CreateReply(ctx context.Context, discussionID, authorID uuid.UUID, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error) {
	if _, err := s.discussionRepo.FindByID(ctx, discussionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Discussion not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch discussion", err.Error())
	}

	if req.ParentReplyID != nil {
		parent, err := s.replyRepo.FindByID(ctx, *req.ParentReplyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Parent reply not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch parent reply", err.Error())
		}
		if parent.DiscussionID != discussionID {
			return nil, response.NewAppError(response.ErrCodeValidation, "Parent reply belongs to a different discussion", "")
		}
	}

	reply := &domain.Reply{
		DiscussionID:  discussionID,
		ParentReplyID: req.ParentReplyID,
		AuthorID:      authorID,
		Content:       req.Content,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create reply", err.Error())
	}

	return &dto.ReplyResponse{
		ReplyID:       reply.ID,
		DiscussionID:  reply.DiscussionID,
		ParentReplyID: reply.ParentReplyID,
		AuthorID:      reply.AuthorID,
		Content:       reply.Content,
		CreatedAt:     reply.CreatedAt,
	}, nil
}

// DeleteReply removes a reply. Only the reply's author may delete it, and
// a reply that resolved its discussion cannot be removed.
func (s *discussionServiceImpl) DeleteReply(ctx context.Context, replyID, actingUserID uuid.UUID) error {
	reply, err := s.replyRepo.FindByID(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Reply not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch reply", err.Error())
	}

	if reply.AuthorID != actingUserID {
		return response.NewAppError(response.ErrCodeForbidden, "Only the reply's author may delete it", "")
	}

	discussion, err := s.discussionRepo.FindByID(ctx, reply.DiscussionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch discussion", err.Error())
	}
	if discussion != nil && discussion.ResolvedReplyID != nil && *discussion.ResolvedReplyID == replyID {
		return response.NewAppError(response.ErrCodeValidation, "Cannot delete the reply that resolved its discussion", "")
	}

	if err := s.replyRepo.Delete(ctx, replyID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete reply", err.Error())
	}
	return nil
}

// toDiscussionResponse converts domain.Discussion to dto.DiscussionResponse
func (s *discussionServiceImpl) toDiscussionResponse(d *domain.Discussion, likeCount int64, isLiked bool) *dto.DiscussionResponse {
	return &dto.DiscussionResponse{
		DiscussionID:    d.ID,
		StageID:         d.StageID,
		AuthorID:        d.AuthorID,
		Content:         d.Content,
		Resolved:        d.Resolved,
		ResolvedReplyID: d.ResolvedReplyID,
		LikeCount:       likeCount,
		IsLiked:         isLiked,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
