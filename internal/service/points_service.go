package service

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// PointsService defines the interface for the points ledger and leaderboard
type PointsService interface {
	Award(ctx context.Context, userID uuid.UUID, amount int, reason domain.PointReason, sourceType string, sourceID *uuid.UUID) error
	GetUserPoints(ctx context.Context, userID uuid.UUID) (*dto.UserPointsResponse, error)
	GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

// pointsServiceImpl is the implementation of PointsService
type pointsServiceImpl struct {
	pointRepo      repository.PointRepository
	redisClient    *redis.Client
	leaderboardKey string
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewPointsService creates a new instance of PointsService. redisClient
// may be nil; the leaderboard then falls back to a SQL aggregate.
func NewPointsService(
	pointRepo repository.PointRepository,
	redisClient *redis.Client,
	leaderboardKey string,
	m *metrics.Metrics,
	logger *zap.Logger,
) PointsService {
	return &pointsServiceImpl{
		pointRepo:      pointRepo,
		redisClient:    redisClient,
		leaderboardKey: leaderboardKey,
		metrics:        m,
		logger:         logger,
	}
}

// Award appends a ledger entry and mirrors the delta into the Redis
// leaderboard. The ledger is the source of truth: a Redis failure is
// logged and the award still succeeds.
func (s *pointsServiceImpl) Award(ctx context.Context, userID uuid.UUID, amount int, reason domain.PointReason, sourceType string, sourceID *uuid.UUID) error {
	entry := &domain.PointEntry{
		UserID:     userID,
		Amount:     amount,
		Reason:     reason,
		SourceType: sourceType,
		SourceID:   sourceID,
	}
	if err := s.pointRepo.Create(ctx, entry); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to record point award", err.Error())
	}

	if s.redisClient != nil {
		if err := s.redisClient.ZIncrBy(ctx, s.leaderboardKey, float64(amount), userID.String()).Err(); err != nil {
			s.logger.Warn("Failed to update leaderboard projection",
				zap.String("user_id", userID.String()),
				zap.Int("amount", amount),
				zap.Error(err))
		}
	}

	if s.metrics != nil {
		s.metrics.IncrementPointsAwarded()
	}

	return nil
}

// GetUserPoints returns a user's running total from the ledger
func (s *pointsServiceImpl) GetUserPoints(ctx context.Context, userID uuid.UUID) (*dto.UserPointsResponse, error) {
	total, err := s.pointRepo.SumByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to sum points", err.Error())
	}
	return &dto.UserPointsResponse{
		UserID: userID,
		Points: total,
	}, nil
}

// GetLeaderboard returns the top users by points, preferring the Redis
// ZSET projection and falling back to the ledger aggregate.
func (s *pointsServiceImpl) GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.redisClient != nil {
		members, err := s.redisClient.ZRevRangeWithScores(ctx, s.leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil {
			entries := make([]dto.LeaderboardEntry, 0, len(members))
			for _, member := range members {
				raw, isString := member.Member.(string)
				if !isString {
					continue
				}
				id, parseErr := uuid.Parse(raw)
				if parseErr != nil {
					continue
				}
				entries = append(entries, dto.LeaderboardEntry{
					Rank:   len(entries) + 1,
					UserID: id,
					Points: int64(member.Score),
				})
			}
			return &dto.LeaderboardResponse{Entries: entries}, nil
		}
		s.logger.Warn("Leaderboard read from Redis failed, falling back to ledger", zap.Error(err))
	}

	rows, err := s.pointRepo.TopUsers(ctx, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate leaderboard", err.Error())
	}

	entries := make([]dto.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:   i + 1,
			UserID: row.UserID,
			Points: row.Total,
		})
	}
	return &dto.LeaderboardResponse{Entries: entries}, nil
}
