package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCreationRequest represents the request to showcase a creation.
// The image itself is uploaded as multipart form data alongside this payload.
type CreateCreationRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=255"`
	Description string `form:"description"`
	LinkURL     string `form:"linkUrl"`
}

// CreateCreationCommentRequest represents the request to comment on a creation
type CreateCreationCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CreationCommentResponse represents one comment on a creation
type CreationCommentResponse struct {
	CommentID  uuid.UUID `json:"commentId"`
	CreationID uuid.UUID `json:"creationId"`
	AuthorID   uuid.UUID `json:"authorId"`
	Content    string    `json:"content"`
	LikeCount  int64     `json:"likeCount"`
	IsLiked    bool      `json:"isLiked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreationResponse represents the creation response
type CreationResponse struct {
	CreationID  uuid.UUID `json:"creationId"`
	AuthorID    uuid.UUID `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	LinkURL     string    `json:"linkUrl,omitempty"`
	LikeCount   int64     `json:"likeCount"`
	IsLiked     bool      `json:"isLiked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreationDetailResponse represents a creation with its comments
type CreationDetailResponse struct {
	CreationResponse
	Comments []CreationCommentResponse `json:"comments"`
}
