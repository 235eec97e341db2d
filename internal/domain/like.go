package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LikeEntityType represents the type of entity a like is attached to
type LikeEntityType string

const (
	LikeEntityDiscussion      LikeEntityType = "DISCUSSION"
	LikeEntityReply           LikeEntityType = "REPLY"
	LikeEntityCreation        LikeEntityType = "CREATION"
	LikeEntityCreationComment LikeEntityType = "CREATION_COMMENT"
)

// IsValid returns true if the entity type is a recognized like target
func (t LikeEntityType) IsValid() bool {
	switch t {
	case LikeEntityDiscussion, LikeEntityReply, LikeEntityCreation, LikeEntityCreationComment:
		return true
	}
	return false
}

// Like represents a per-user endorsement of an entity. Row existence is the
// "liked" boolean; the composite unique index guards concurrent double toggles.
// EntityID is polymorphic, so no foreign key constraint is declared on it.
type Like struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_likes_user_entity" json:"user_id"`
	EntityType LikeEntityType `gorm:"type:varchar(50);not null;uniqueIndex:uq_likes_user_entity;index:idx_likes_entity,priority:1" json:"entity_type"`
	EntityID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_likes_user_entity;index:idx_likes_entity,priority:2" json:"entity_id"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
}

// BeforeCreate assigns a UUID when none was set
func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
