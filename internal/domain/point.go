package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointReason identifies why points were awarded
type PointReason string

const (
	PointReasonReplyResolved PointReason = "REPLY_RESOLVED"
	PointReasonManualAdjust  PointReason = "MANUAL_ADJUST"
)

// PointEntry is one row of the append-only points ledger. The leaderboard
// is a Redis projection of the per-user sum of these rows.
type PointEntry struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_point_entries_user_id" json:"user_id"`
	Amount     int         `gorm:"not null" json:"amount"`
	Reason     PointReason `gorm:"type:varchar(50);not null" json:"reason"`
	SourceType string      `gorm:"type:varchar(50)" json:"source_type"`
	SourceID   *uuid.UUID  `gorm:"type:uuid" json:"source_id"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
}

// BeforeCreate assigns a UUID when none was set
func (p *PointEntry) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName specifies the table name for PointEntry
func (PointEntry) TableName() string {
	return "point_entries"
}
