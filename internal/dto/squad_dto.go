package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateSquadRequest represents the request to create a squad
type CreateSquadRequest struct {
	Name         string                 `json:"name" binding:"required,min=1,max=255"`
	Description  string                 `json:"description"`
	LearningPath map[string]interface{} `json:"learningPath,omitempty"`
	MaxMembers   int                    `json:"maxMembers" binding:"omitempty,min=0"`
}

// SquadMemberResponse represents one squad member
type SquadMemberResponse struct {
	UserID   uuid.UUID `json:"userId"`
	RoleName string    `json:"roleName"`
	JoinedAt time.Time `json:"joinedAt"`
}

// SquadResponse represents the squad response
type SquadResponse struct {
	SquadID      uuid.UUID              `json:"squadId"`
	OwnerID      uuid.UUID              `json:"ownerId"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	LearningPath map[string]interface{} `json:"learningPath,omitempty"`
	MaxMembers   int                    `json:"maxMembers"`
	MemberCount  int                    `json:"memberCount"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// SquadDetailResponse represents a squad with its members
type SquadDetailResponse struct {
	SquadResponse
	Members []SquadMemberResponse `json:"members"`
}
