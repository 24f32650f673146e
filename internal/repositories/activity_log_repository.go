package repositories

import (
	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(entry *models.ActivityLog) error
	FindRecent(limit int) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *activityLogRepository) FindRecent(limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
