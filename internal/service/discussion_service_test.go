package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
)

type discussionFixture struct {
	discussionRepo *mockDiscussionRepository
	replyRepo      *mockReplyRepository
	likeRepo       *mockLikeRepository
	courseRepo     *mockCourseRepository
	service        DiscussionService
}

func newDiscussionFixture() *discussionFixture {
	f := &discussionFixture{
		discussionRepo: &mockDiscussionRepository{},
		replyRepo:      &mockReplyRepository{},
		likeRepo:       &mockLikeRepository{},
		courseRepo:     &mockCourseRepository{},
	}
	f.service = NewDiscussionService(f.discussionRepo, f.replyRepo, f.likeRepo, f.courseRepo, zap.NewNop())
	return f
}

func TestCreateDiscussion_RequiresExistingStage(t *testing.T) {
	f := newDiscussionFixture()

	_, err := f.service.CreateDiscussion(context.Background(), uuid.New(), &dto.CreateDiscussionRequest{
		StageID: uuid.New(),
		Content: "help",
	})
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestCreateDiscussion_Success(t *testing.T) {
	f := newDiscussionFixture()
	stageID := uuid.New()
	f.courseRepo.FindStageByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.CourseStage, error) {
		return &domain.CourseStage{BaseModel: domain.BaseModel{ID: id}}, nil
	}

	authorID := uuid.New()
	result, err := f.service.CreateDiscussion(context.Background(), authorID, &dto.CreateDiscussionRequest{
		StageID: stageID,
		Content: "how does this work",
	})
	require.NoError(t, err)

	assert.Equal(t, stageID, result.StageID)
	assert.Equal(t, authorID, result.AuthorID)
	assert.False(t, result.Resolved)
	assert.Nil(t, result.ResolvedReplyID)
}

func TestCreateReply_ParentMustBelongToSameDiscussion(t *testing.T) {
	f := newDiscussionFixture()
	discussionID := uuid.New()
	parentID := uuid.New()

	f.discussionRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
		return &domain.Discussion{BaseModel: domain.BaseModel{ID: discussionID}}, nil
	}
	f.replyRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{
			BaseModel:    domain.BaseModel{ID: parentID},
			DiscussionID: uuid.New(),
		}, nil
	}

	_, err := f.service.CreateReply(context.Background(), discussionID, uuid.New(), &dto.CreateReplyRequest{
		Content:       "nested answer",
		ParentReplyID: &parentID,
	})
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestCreateReply_NestedUnderParent(t *testing.T) {
	f := newDiscussionFixture()
	discussionID := uuid.New()
	parentID := uuid.New()

	f.discussionRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
		return &domain.Discussion{BaseModel: domain.BaseModel{ID: discussionID}}, nil
	}
	f.replyRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{
			BaseModel:    domain.BaseModel{ID: parentID},
			DiscussionID: discussionID,
		}, nil
	}

	result, err := f.service.CreateReply(context.Background(), discussionID, uuid.New(), &dto.CreateReplyRequest{
		Content:       "nested answer",
		ParentReplyID: &parentID,
	})
	require.NoError(t, err)
	require.NotNil(t, result.ParentReplyID)
	assert.Equal(t, parentID, *result.ParentReplyID)
}

func TestDeleteReply_OnlyAuthor(t *testing.T) {
	f := newDiscussionFixture()
	author := uuid.New()
	replyID := uuid.New()
	discussionID := uuid.New()

	f.replyRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{BaseModel: domain.BaseModel{ID: replyID}, DiscussionID: discussionID, AuthorID: author}, nil
	}
	f.discussionRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
		return &domain.Discussion{BaseModel: domain.BaseModel{ID: discussionID}}, nil
	}

	err := f.service.DeleteReply(context.Background(), replyID, uuid.New())
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeForbidden, appErr.Code)

	require.NoError(t, f.service.DeleteReply(context.Background(), replyID, author))
}

func TestDeleteReply_AcceptedSolutionProtected(t *testing.T) {
	f := newDiscussionFixture()
	author := uuid.New()
	replyID := uuid.New()
	discussionID := uuid.New()

	f.replyRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
		return &domain.Reply{BaseModel: domain.BaseModel{ID: replyID}, DiscussionID: discussionID, AuthorID: author}, nil
	}
	f.discussionRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
		return &domain.Discussion{
			BaseModel:       domain.BaseModel{ID: discussionID},
			Resolved:        true,
			ResolvedReplyID: &replyID,
		}, nil
	}

	err := f.service.DeleteReply(context.Background(), replyID, author)
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestGetDiscussion_MarksResolvedReplyAndLikes(t *testing.T) {
	f := newDiscussionFixture()
	discussionID := uuid.New()
	viewer := uuid.New()
	acceptedID := uuid.New()
	otherID := uuid.New()

	f.discussionRepo.FindByIDWithRepliesFunc = func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
		return &domain.Discussion{
			BaseModel:       domain.BaseModel{ID: discussionID},
			AuthorID:        uuid.New(),
			Resolved:        true,
			ResolvedReplyID: &acceptedID,
			Replies: []domain.Reply{
				{BaseModel: domain.BaseModel{ID: otherID}, DiscussionID: discussionID, Content: "maybe"},
				{BaseModel: domain.BaseModel{ID: acceptedID}, DiscussionID: discussionID, Content: "this one"},
			},
		}, nil
	}
	f.likeRepo.CountByEntityFunc = func(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error) {
		return 3, nil
	}
	f.likeRepo.FindByUserAndEntityFunc = func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error) {
		return nil, gorm.ErrRecordNotFound
	}
	f.likeRepo.CountByEntitiesFunc = func(ctx context.Context, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
		return map[uuid.UUID]int64{acceptedID: 5}, nil
	}
	f.likeRepo.ExistsByUserAndEntitiesFunc = func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
		return map[uuid.UUID]bool{acceptedID: true}, nil
	}

	result, err := f.service.GetDiscussion(context.Background(), discussionID, viewer)
	require.NoError(t, err)

	assert.True(t, result.Resolved)
	assert.Equal(t, int64(3), result.LikeCount)
	require.Len(t, result.Replies, 2)
	assert.False(t, result.Replies[0].Resolved)
	assert.True(t, result.Replies[1].Resolved)
	assert.Equal(t, int64(5), result.Replies[1].LikeCount)
	assert.True(t, result.Replies[1].IsLiked)
}
