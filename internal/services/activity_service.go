package services

import (
	"encoding/json"

	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"

	"gorm.io/datatypes"
)

// ActivityService is the best-effort audit trail. Log never returns an
// error: a failed insert is logged and swallowed so it cannot break the
// operation being recorded.
type ActivityService interface {
	Log(user *models.User, action, resource string, metadata map[string]interface{})
	GetRecent(limit int) ([]models.ActivityLog, error)
}

type activityService struct {
	repo repositories.ActivityLogRepository
}

func NewActivityService(repo repositories.ActivityLogRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Log(user *models.User, action, resource string, metadata map[string]interface{}) {
	entry := &models.ActivityLog{
		Action:   action,
		Resource: resource,
	}
	if user != nil {
		entry.UserID = user.ID
		entry.UserEmail = user.Email
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			logger.Warn("failed to marshal activity metadata", "action", action, "error", err)
		} else {
			entry.Metadata = datatypes.JSON(raw)
		}
	}

	if err := s.repo.Create(entry); err != nil {
		logger.Warn("failed to write activity log", "action", action, "error", err)
	}
}

func (s *activityService) GetRecent(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 25
	}
	return s.repo.FindRecent(limit)
}
