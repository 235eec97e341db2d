package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateDiscussionRequest represents the request to open a discussion on a course stage
type CreateDiscussionRequest struct {
	StageID uuid.UUID `json:"stageId" binding:"required"`
	Content string    `json:"content" binding:"required,min=1"`
}

// CreateReplyRequest represents the request to reply to a discussion.
// parentReplyId nests the reply under another reply of the same discussion.
type CreateReplyRequest struct {
	Content       string     `json:"content" binding:"required,min=1"`
	ParentReplyID *uuid.UUID `json:"parentReplyId,omitempty"`
}

// DiscussionResponse represents the discussion response
type DiscussionResponse struct {
	DiscussionID    uuid.UUID  `json:"discussionId"`
	StageID         uuid.UUID  `json:"stageId"`
	AuthorID        uuid.UUID  `json:"authorId"`
	Content         string     `json:"content"`
	Resolved        bool       `json:"resolved"`
	ResolvedReplyID *uuid.UUID `json:"resolvedReplyId"`
	LikeCount       int64      `json:"likeCount"`
	IsLiked         bool       `json:"isLiked"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ReplyResponse represents a single reply in a discussion thread
type ReplyResponse struct {
	ReplyID       uuid.UUID  `json:"replyId"`
	DiscussionID  uuid.UUID  `json:"discussionId"`
	ParentReplyID *uuid.UUID `json:"parentReplyId"`
	AuthorID      uuid.UUID  `json:"authorId"`
	Content       string     `json:"content"`
	Resolved      bool       `json:"resolved"`
	LikeCount     int64      `json:"likeCount"`
	IsLiked       bool       `json:"isLiked"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DiscussionDetailResponse represents a discussion with its reply thread
type DiscussionDetailResponse struct {
	DiscussionResponse
	Replies []ReplyResponse `json:"replies"`
}

// LikeToggleResponse represents the outcome of a like toggle
type LikeToggleResponse struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}
