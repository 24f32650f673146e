package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/models"
	"markbook_backend/internal/repositories"
	"markbook_backend/pkg/apperrors"
)

type AssessmentService interface {
	Create(actor *models.User, req *dto.CreateAssessmentRequest) (*models.Assessment, error)
	GetByID(id string) (*models.Assessment, error)
	List(query *dto.ListAssessmentsQuery) ([]models.Assessment, error)
	Update(actor *models.User, id string, req *dto.UpdateAssessmentRequest) (*models.Assessment, error)
	Delete(actor *models.User, id string) error

	UpsertScore(actor *models.User, assessmentID string, req *dto.UpsertScoreRequest) (*models.AssessmentScore, error)
	ListScores(assessmentID string) ([]models.AssessmentScore, error)

	// ExportScoresCSV renders every score for a grade as a CSV document.
	ExportScoresCSV(grade string) ([]byte, error)
}

type assessmentService struct {
	repo        repositories.AssessmentRepository
	studentRepo repositories.StudentRepository
	activity    ActivityService
}

func NewAssessmentService(repo repositories.AssessmentRepository, studentRepo repositories.StudentRepository, activity ActivityService) AssessmentService {
	return &assessmentService{repo: repo, studentRepo: studentRepo, activity: activity}
}

func (s *assessmentService) Create(actor *models.User, req *dto.CreateAssessmentRequest) (*models.Assessment, error) {
	assigned, err := time.Parse(dateLayout, req.DateAssigned)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"date_assigned": "Must be in YYYY-MM-DD format"})
	}

	assessment := &models.Assessment{
		Title:        req.Title,
		Type:         models.AssessmentType(req.Type),
		TotalMarks:   req.TotalMarks,
		DateAssigned: assigned,
		Grade:        req.Grade,
	}
	if req.DateDue != "" {
		due, err := time.Parse(dateLayout, req.DateDue)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"date_due": "Must be in YYYY-MM-DD format"})
		}
		assessment.DateDue = &due
	}

	if err := s.repo.Create(assessment); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "ASSESSMENT_CREATED", assessment.ID, map[string]interface{}{
		"title": assessment.Title,
		"grade": assessment.Grade,
	})
	return assessment, nil
}

func (s *assessmentService) GetByID(id string) (*models.Assessment, error) {
	assessment, err := s.repo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAssessmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) List(query *dto.ListAssessmentsQuery) ([]models.Assessment, error) {
	limit, offset := pageToRange(query.Page, query.PageSize)
	return s.repo.FindAll(query.Grade, limit, offset)
}

func (s *assessmentService) Update(actor *models.User, id string, req *dto.UpdateAssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		assessment.Title = *req.Title
	}
	if req.Type != nil {
		assessment.Type = models.AssessmentType(*req.Type)
	}
	if req.TotalMarks != nil {
		assessment.TotalMarks = *req.TotalMarks
	}
	if req.DateDue != nil {
		due, err := time.Parse(dateLayout, *req.DateDue)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"date_due": "Must be in YYYY-MM-DD format"})
		}
		assessment.DateDue = &due
	}

	if err := s.repo.Update(assessment); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "ASSESSMENT_UPDATED", assessment.ID, nil)
	return assessment, nil
}

func (s *assessmentService) Delete(actor *models.User, id string) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.activity.Log(actor, "ASSESSMENT_DELETED", id, nil)
	return nil
}

func (s *assessmentService) UpsertScore(actor *models.User, assessmentID string, req *dto.UpsertScoreRequest) (*models.AssessmentScore, error) {
	assessment, err := s.GetByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if req.Score > float64(assessment.TotalMarks) {
		return nil, apperrors.ValidationError(map[string]string{
			"score": fmt.Sprintf("Cannot exceed total marks (%d)", assessment.TotalMarks),
		})
	}
	if _, err := s.studentRepo.FindByID(req.StudentID); err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	score := &models.AssessmentScore{
		AssessmentID: assessmentID,
		StudentID:    req.StudentID,
		Score:        req.Score,
		Comment:      req.Comment,
	}
	if err := s.repo.UpsertScore(score); err != nil {
		return nil, err
	}

	s.activity.Log(actor, "SCORE_RECORDED", assessmentID, map[string]interface{}{
		"student_id": req.StudentID,
		"score":      req.Score,
	})
	return score, nil
}

func (s *assessmentService) ListScores(assessmentID string) ([]models.AssessmentScore, error) {
	if _, err := s.GetByID(assessmentID); err != nil {
		return nil, err
	}
	return s.repo.FindScores(assessmentID)
}

func (s *assessmentService) ExportScoresCSV(grade string) ([]byte, error) {
	scores, err := s.repo.FindScoresByGrade(grade)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"student", "grade", "assessment", "type", "score", "total_marks", "comment"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range scores {
		row := make([]string, len(header))
		if sc.Student != nil {
			row[0] = sc.Student.FirstName + " " + sc.Student.LastName
			row[1] = sc.Student.Grade
		}
		if sc.Assessment != nil {
			row[2] = sc.Assessment.Title
			row[3] = string(sc.Assessment.Type)
			row[5] = fmt.Sprintf("%d", sc.Assessment.TotalMarks)
		}
		row[4] = fmt.Sprintf("%g", sc.Score)
		row[6] = sc.Comment
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
