package services

import (
	"time"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"
)

const dateLayout = "2006-01-02"

// RegisterService records attendance. One record per (student, date);
// submitting again for the same pair overwrites status and comment.
type RegisterService interface {
	Upsert(actor *models.User, req *dto.UpsertRegisterRequest) (*models.RegisterRecord, error)
	ListByDate(date string) ([]models.RegisterRecord, error)
	ListByStudent(studentID, from, to string) ([]models.RegisterRecord, error)
	Delete(actor *models.User, id string) error
}

type registerService struct {
	repo        repositories.RegisterRepository
	studentRepo repositories.StudentRepository
	activity    ActivityService
}

func NewRegisterService(repo repositories.RegisterRepository, studentRepo repositories.StudentRepository, activity ActivityService) RegisterService {
	return &registerService{repo: repo, studentRepo: studentRepo, activity: activity}
}

func (s *registerService) Upsert(actor *models.User, req *dto.UpsertRegisterRequest) (*models.RegisterRecord, error) {
	if _, err := s.studentRepo.FindByID(req.StudentID); err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date": "Must be in YYYY-MM-DD format"})
	}

	record := &models.RegisterRecord{
		StudentID: req.StudentID,
		Date:      date,
		Status:    models.RegisterStatus(req.Status),
		Comment:   req.Comment,
	}

	if err := s.repo.Upsert(record); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "REGISTER_MARKED", record.StudentID, map[string]interface{}{
		"date":   req.Date,
		"status": req.Status,
	})
	return record, nil
}

func (s *registerService) ListByDate(dateStr string) ([]models.RegisterRecord, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date": "Must be in YYYY-MM-DD format"})
	}
	return s.repo.FindByDate(date)
}

func (s *registerService) ListByStudent(studentID, fromStr, toStr string) ([]models.RegisterRecord, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"from": "Must be in YYYY-MM-DD format"})
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"to": "Must be in YYYY-MM-DD format"})
		}
		to = &t
	}
	return s.repo.FindByStudent(studentID, from, to)
}

func (s *registerService) Delete(actor *models.User, id string) error {
	if err := s.repo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrRegisterRecordNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}
	s.activity.Log(actor, "REGISTER_DELETED", id, nil)
	return nil
}
