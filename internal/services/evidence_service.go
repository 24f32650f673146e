package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"markbook_backend/internal/config"
	"markbook_backend/internal/dto"
	"markbook_backend/internal/entitlement"
	"markbook_backend/internal/logger"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/internal/storage"
	"markbook_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// EvidenceService stores teacher-uploaded files. FREE accounts are capped at
// a configured number of uploads; the UNLIMITED_UPLOADS feature lifts the cap.
type EvidenceService interface {
	Upload(ctx context.Context, user *models.User, form *dto.UploadEvidenceForm,
		filename string, size int64, contentType string, reader io.Reader) (*models.Evidence, error)
	GetByID(user *models.User, id string) (*models.Evidence, error)
	List(user *models.User, page, pageSize int) ([]models.Evidence, error)
	Delete(ctx context.Context, user *models.User, id string) error
}

type evidenceService struct {
	repo     repositories.EvidenceRepository
	store    storage.Storage
	guard    *entitlement.Guard
	cfg      *config.Config
	activity ActivityService
}

func NewEvidenceService(repo repositories.EvidenceRepository, store storage.Storage,
	guard *entitlement.Guard, cfg *config.Config, activity ActivityService) EvidenceService {
	return &evidenceService{
		repo:     repo,
		store:    store,
		guard:    guard,
		cfg:      cfg,
		activity: activity,
	}
}

func (s *evidenceService) Upload(ctx context.Context, user *models.User, form *dto.UploadEvidenceForm,
	filename string, size int64, contentType string, reader io.Reader) (*models.Evidence, error) {

	if size > s.cfg.Upload.MaxSize {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("File exceeds the maximum size of %d bytes", s.cfg.Upload.MaxSize),
		})
	}
	if !s.isAllowedType(contentType) {
		return nil, apperrors.ValidationError(map[string]string{
			"file": fmt.Sprintf("Content type %q is not allowed", contentType),
		})
	}

	if !s.guard.HasFeature(user, entitlement.FeatureUnlimitedUploads) {
		count, err := s.repo.CountByTeacher(user.ID)
		if err != nil {
			return nil, err
		}
		if count >= s.cfg.Upload.FreePlanLimit {
			return nil, apperrors.ErrUploadLimitReached
		}
	}

	key := fmt.Sprintf("evidence/%s/%s%s", user.ID, uuid.NewString(), filepath.Ext(filename))
	if err := s.store.Save(ctx, key, reader, contentType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "evidence",
			"Failed to store file", http.StatusInternalServerError)
	}

	url, err := s.store.GetURL(ctx, key)
	if err != nil {
		logger.Warn("failed to resolve evidence url", "key", key, "error", err)
	}

	evidence := &models.Evidence{
		TeacherID:   user.ID,
		Title:       form.Title,
		GPSection:   form.GPSection,
		Description: form.Description,
		Filename:    filename,
		StorageKey:  key,
		URL:         url,
		Size:        size,
		ContentType: contentType,
	}

	if err := s.repo.Create(evidence); err != nil {
		// Best-effort cleanup of the orphaned object.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logger.Warn("failed to clean up orphaned upload", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.activity.Log(user, "EVIDENCE_UPLOADED", evidence.ID, map[string]interface{}{
		"filename": filename,
		"size":     size,
	})
	return evidence, nil
}

func (s *evidenceService) GetByID(user *models.User, id string) (*models.Evidence, error) {
	evidence, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEvidenceNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if evidence.TeacherID != user.ID && user.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return evidence, nil
}

func (s *evidenceService) List(user *models.User, page, pageSize int) ([]models.Evidence, error) {
	limit, offset := pageToRange(page, pageSize)
	return s.repo.FindByTeacher(user.ID, limit, offset)
}

func (s *evidenceService) Delete(ctx context.Context, user *models.User, id string) error {
	evidence, err := s.GetByID(user, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, evidence.StorageKey); err != nil {
		logger.Warn("failed to delete stored file", "key", evidence.StorageKey, "error", err)
	}
	if err := s.repo.Delete(evidence.ID); err != nil {
		return err
	}

	s.activity.Log(user, "EVIDENCE_DELETED", evidence.ID, map[string]interface{}{
		"filename": evidence.Filename,
	})
	return nil
}

func (s *evidenceService) isAllowedType(contentType string) bool {
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
