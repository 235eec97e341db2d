package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateCourseRequest represents the request to create a course
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

// AddStageRequest represents the request to append a stage to a course
type AddStageRequest struct {
	Title   string                 `json:"title" binding:"required,min=1,max=255"`
	Content string                 `json:"content"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// StageResponse represents one course stage
type StageResponse struct {
	StageID   uuid.UUID              `json:"stageId"`
	CourseID  uuid.UUID              `json:"courseId"`
	Position  int                    `json:"position"`
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Meta      map[string]interface{} `json:"meta,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// CourseResponse represents the course response
type CourseResponse struct {
	CourseID    uuid.UUID `json:"courseId"`
	AuthorID    uuid.UUID `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverURL    string    `json:"coverUrl"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseDetailResponse represents a course with its ordered stages
type CourseDetailResponse struct {
	CourseResponse
	Stages []StageResponse `json:"stages"`
}
