package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
)

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	models := []interface{}{
		&domain.Course{},
		&domain.CourseStage{},
		&domain.Discussion{},
		&domain.Reply{},
		&domain.Like{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.Squad{},
		&domain.SquadMember{},
		&domain.PointEntry{},
		&domain.Creation{},
		&domain.CreationComment{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	logger.Info("Database migration completed", zap.Int("models", len(models)))
	return nil
}
