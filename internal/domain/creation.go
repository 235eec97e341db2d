package domain

import "github.com/google/uuid"

// Creation represents a showcased work posted by a user.
// ImageKey is the S3 object key of the showcase image.
type Creation struct {
	BaseModel
	AuthorID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_creations_author_id" json:"author_id"`
	Title       string            `gorm:"type:varchar(255);not null" json:"title"`
	Description string            `gorm:"type:text" json:"description"`
	ImageKey    string            `gorm:"type:text" json:"image_key"`
	LinkURL     string            `gorm:"type:text" json:"link_url"`
	Comments    []CreationComment `gorm:"foreignKey:CreationID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// CreationComment represents a comment on a creation
type CreationComment struct {
	BaseModel
	CreationID uuid.UUID `gorm:"type:uuid;not null;index:idx_creation_comments_creation_id" json:"creation_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_creation_comments_author_id" json:"author_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Creation   Creation  `gorm:"foreignKey:CreationID;constraint:OnDelete:CASCADE" json:"creation,omitempty"`
}

// TableName specifies the table name for Creation
func (Creation) TableName() string {
	return "creations"
}

// TableName specifies the table name for CreationComment
func (CreationComment) TableName() string {
	return "creation_comments"
}
