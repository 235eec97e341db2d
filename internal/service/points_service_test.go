package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/repository"
)

func TestPointsAward_AppendsLedgerEntry(t *testing.T) {
	pointRepo := &mockPointRepository{}
	var created *domain.PointEntry
	pointRepo.CreateFunc = func(ctx context.Context, entry *domain.PointEntry) error {
		created = entry
		return nil
	}

	svc := NewPointsService(pointRepo, nil, "leaderboard:points", newTestMetrics(), zap.NewNop())

	userID := uuid.New()
	sourceID := uuid.New()
	err := svc.Award(context.Background(), userID, 50, domain.PointReasonReplyResolved, "reply", &sourceID)
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, 50, created.Amount)
	assert.Equal(t, domain.PointReasonReplyResolved, created.Reason)
	assert.Equal(t, "reply", created.SourceType)
}

func TestPointsGetUserPoints(t *testing.T) {
	pointRepo := &mockPointRepository{
		SumByUserFunc: func(ctx context.Context, userID uuid.UUID) (int64, error) {
			return 150, nil
		},
	}
	svc := NewPointsService(pointRepo, nil, "leaderboard:points", newTestMetrics(), zap.NewNop())

	result, err := svc.GetUserPoints(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(150), result.Points)
}

func TestPointsGetLeaderboard_LedgerFallbackWithoutRedis(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	pointRepo := &mockPointRepository{
		TopUsersFunc: func(ctx context.Context, limit int) ([]repository.UserPointTotal, error) {
			assert.Equal(t, 5, limit)
			return []repository.UserPointTotal{
				{UserID: alice, Total: 200},
				{UserID: bob, Total: 100},
			}, nil
		},
	}
	svc := NewPointsService(pointRepo, nil, "leaderboard:points", newTestMetrics(), zap.NewNop())

	result, err := svc.GetLeaderboard(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, alice, result.Entries[0].UserID)
	assert.Equal(t, int64(200), result.Entries[0].Points)
	assert.Equal(t, 2, result.Entries[1].Rank)
}

func TestPointsGetLeaderboard_RedisProjection(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()
	require.NoError(t, client.ZAdd(ctx, "leaderboard:points",
		&redis.Z{Score: 200, Member: alice.String()},
		&redis.Z{Score: 100, Member: bob.String()},
		&redis.Z{Score: 999, Member: "not-a-user-id"},
	).Err())

	svc := NewPointsService(&mockPointRepository{}, client, "leaderboard:points", newTestMetrics(), zap.NewNop())

	result, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)

	// The unparseable member is skipped without leaving a rank gap
	require.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, 2, result.Entries[1].Rank)
	assert.Equal(t, alice, result.Entries[0].UserID)
	assert.Equal(t, int64(200), result.Entries[0].Points)
	assert.Equal(t, bob, result.Entries[1].UserID)
	assert.Equal(t, int64(100), result.Entries[1].Points)
}

func TestPointsAward_MirrorsIntoRedis(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	svc := NewPointsService(&mockPointRepository{}, client, "leaderboard:points", newTestMetrics(), zap.NewNop())

	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, svc.Award(ctx, userID, 50, domain.PointReasonReplyResolved, "reply", nil))
	require.NoError(t, svc.Award(ctx, userID, 50, domain.PointReasonReplyResolved, "reply", nil))

	score, err := client.ZScore(ctx, "leaderboard:points", userID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, float64(100), score)
}
