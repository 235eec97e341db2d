package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Course represents a course with staged learning materials
type Course struct {
	BaseModel
	AuthorID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_courses_author_id" json:"author_id"`
	Title       string        `gorm:"type:varchar(255);not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	CoverURL    string        `gorm:"type:text" json:"cover_url"`
	IsPublished bool          `gorm:"default:false" json:"is_published"`
	Stages      []CourseStage `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

// CourseStage represents one ordered material within a course.
// Discussions attach to a stage.
type CourseStage struct {
	BaseModel
	CourseID uuid.UUID      `gorm:"type:uuid;not null;index:idx_course_stages_course_id;uniqueIndex:uq_course_stages_course_position" json:"course_id"`
	Position int            `gorm:"not null;uniqueIndex:uq_course_stages_course_position" json:"position"`
	Title    string         `gorm:"type:varchar(255);not null" json:"title"`
	Content  string         `gorm:"type:text" json:"content"`
	Meta     datatypes.JSON `gorm:"type:jsonb" json:"meta"`
	Course   Course         `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}

// TableName specifies the table name for Course
func (Course) TableName() string {
	return "courses"
}

// TableName specifies the table name for CourseStage
func (CourseStage) TableName() string {
	return "course_stages"
}
