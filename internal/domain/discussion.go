package domain

import "github.com/google/uuid"

// Discussion represents a question/post attached to a course stage.
// ResolvedReplyID is nil until the author accepts a reply as the solution;
// when set it must reference a reply belonging to this discussion.
type Discussion struct {
	BaseModel
	StageID         uuid.UUID   `gorm:"type:uuid;not null;index:idx_discussions_stage_id" json:"stage_id"`
	AuthorID        uuid.UUID   `gorm:"type:uuid;not null;index:idx_discussions_author_id" json:"author_id"`
	Content         string      `gorm:"type:text;not null" json:"content"`
	Resolved        bool        `gorm:"not null;default:false" json:"resolved"`
	ResolvedReplyID *uuid.UUID  `gorm:"type:uuid" json:"resolved_reply_id"`
	Stage           CourseStage `gorm:"foreignKey:StageID;constraint:OnDelete:CASCADE" json:"stage,omitempty"`
	Replies         []Reply     `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
}

// Reply represents a response to a discussion, possibly nested under
// another reply of the same discussion.
type Reply struct {
	BaseModel
	DiscussionID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_replies_discussion_id" json:"discussion_id"`
	ParentReplyID *uuid.UUID `gorm:"type:uuid;index:idx_replies_parent_reply_id" json:"parent_reply_id"`
	AuthorID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_replies_author_id" json:"author_id"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Discussion    Discussion `gorm:"foreignKey:DiscussionID;constraint:OnDelete:CASCADE" json:"discussion,omitempty"`
}

// TableName specifies the table name for Discussion
func (Discussion) TableName() string {
	return "discussions"
}

// TableName specifies the table name for Reply
func (Reply) TableName() string {
	return "replies"
}
