package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/response"
)

type likeFixture struct {
	likeRepo *mockLikeRepository
	service  LikeService

	discussionID uuid.UUID
	userID       uuid.UUID
	stored       map[uuid.UUID]bool
}

// newLikeFixture backs the like repo with an in-memory map keyed by user
func newLikeFixture() *likeFixture {
	f := &likeFixture{
		likeRepo:     &mockLikeRepository{},
		discussionID: uuid.New(),
		userID:       uuid.New(),
		stored:       make(map[uuid.UUID]bool),
	}

	discussionRepo := &mockDiscussionRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
			if id == f.discussionID {
				return &domain.Discussion{BaseModel: domain.BaseModel{ID: id}}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}

	f.likeRepo.FindByUserAndEntityFunc = func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error) {
		if f.stored[userID] {
			return &domain.Like{UserID: userID, EntityType: entityType, EntityID: entityID}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	f.likeRepo.CreateFunc = func(ctx context.Context, like *domain.Like) error {
		if f.stored[like.UserID] {
			return errors.New("duplicate key value violates unique constraint")
		}
		f.stored[like.UserID] = true
		return nil
	}
	f.likeRepo.DeleteByUserAndEntityFunc = func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (bool, error) {
		existed := f.stored[userID]
		delete(f.stored, userID)
		return existed, nil
	}
	f.likeRepo.CountByEntityFunc = func(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error) {
		return int64(len(f.stored)), nil
	}

	f.service = NewLikeService(
		f.likeRepo, discussionRepo, &mockReplyRepository{}, &mockCreationRepository{},
		newTestMetrics(),
	)
	return f
}

func TestToggleLike_FirstToggleLikes(t *testing.T) {
	f := newLikeFixture()

	result, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, f.discussionID, f.userID)
	require.NoError(t, err)

	assert.True(t, result.IsLiked)
	assert.Equal(t, int64(1), result.LikeCount)
}

func TestToggleLike_SecondToggleUnlikes(t *testing.T) {
	f := newLikeFixture()

	_, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, f.discussionID, f.userID)
	require.NoError(t, err)

	result, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, f.discussionID, f.userID)
	require.NoError(t, err)

	assert.False(t, result.IsLiked)
	assert.Equal(t, int64(0), result.LikeCount)
}

func TestToggleLike_TargetMustExist(t *testing.T) {
	f := newLikeFixture()

	_, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, uuid.New(), f.userID)
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
}

func TestToggleLike_InvalidEntityType(t *testing.T) {
	f := newLikeFixture()

	_, err := f.service.ToggleLike(context.Background(), domain.LikeEntityType("BANANA"), f.discussionID, f.userID)
	require.Error(t, err)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeValidation, appErr.Code)
}

func TestToggleLike_ConcurrentDoubleInsertReadsBackLiked(t *testing.T) {
	f := newLikeFixture()
	// Read sees no like, but another toggle inserts before our create.
	f.likeRepo.FindByUserAndEntityFunc = func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error) {
		return nil, gorm.ErrRecordNotFound
	}
	f.stored[f.userID] = true

	result, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, f.discussionID, f.userID)
	require.NoError(t, err)
	assert.True(t, result.IsLiked)
}

// Toggling n times must always land on liked for odd n and un-liked for
// even n, with the count matching.
func TestToggleLike_ParityProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	properties.Property("toggle parity determines final state", prop.ForAll(
		func(n int) bool {
			f := newLikeFixture()
			var last bool
			for i := 0; i < n; i++ {
				result, err := f.service.ToggleLike(context.Background(), domain.LikeEntityDiscussion, f.discussionID, f.userID)
				if err != nil {
					return false
				}
				last = result.IsLiked
			}
			wantLiked := n%2 == 1
			return last == wantLiked && f.stored[f.userID] == wantLiked
		},
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}
