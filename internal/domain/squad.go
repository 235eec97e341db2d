package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SquadRole represents the role of a squad member
type SquadRole string

const (
	SquadRoleOwner  SquadRole = "OWNER"
	SquadRoleMember SquadRole = "MEMBER"
)

// Squad represents a study group working through a learning path
type Squad struct {
	BaseModel
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_squads_owner_id" json:"owner_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	LearningPath datatypes.JSON `gorm:"type:jsonb" json:"learning_path"`
	MaxMembers   int            `gorm:"default:0" json:"max_members"`
	Members      []SquadMember  `gorm:"foreignKey:SquadID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// SquadMember represents a member of a squad
type SquadMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SquadID  uuid.UUID `gorm:"type:uuid;not null;index:idx_squad_members_squad_id;uniqueIndex:uq_squad_members_squad_user" json:"squad_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_squad_members_user_id;uniqueIndex:uq_squad_members_squad_user" json:"user_id"`
	RoleName SquadRole `gorm:"type:varchar(50);not null;default:'MEMBER'" json:"role_name"`
	JoinedAt time.Time `gorm:"type:timestamp;not null" json:"joined_at"`
	Squad    Squad     `gorm:"foreignKey:SquadID;constraint:OnDelete:CASCADE" json:"squad,omitempty"`
}

// BeforeCreate assigns a UUID when none was set
func (m *SquadMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for Squad
func (Squad) TableName() string {
	return "squads"
}

// TableName specifies the table name for SquadMember
func (SquadMember) TableName() string {
	return "squad_members"
}
