package dto

import "github.com/google/uuid"

// LeaderboardEntry represents one ranked row of the points leaderboard
type LeaderboardEntry struct {
	Rank   int       `json:"rank"`
	UserID uuid.UUID `json:"userId"`
	Points int64     `json:"points"`
}

// LeaderboardResponse represents the leaderboard response
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// UserPointsResponse represents a single user's running total
type UserPointsResponse struct {
	UserID uuid.UUID `json:"userId"`
	Points int64     `json:"points"`
}
