package database

import (
	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate creates the uuid extension and runs GORM auto-migration for every
// model in dependency order.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Class{},
		&models.RegisterRecord{},
		&models.Assessment{},
		&models.AssessmentScore{},
		&models.Evidence{},
		&models.ActivityLog{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migration complete")
	return nil
}
