package repositories

import (
	"errors"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrScoreNotFound      = errors.New("assessment score not found")
)

type AssessmentRepository interface {
	FindByID(id string) (*models.Assessment, error)
	FindAll(grade string, limit, offset int) ([]models.Assessment, error)
	Create(assessment *models.Assessment) error
	Update(assessment *models.Assessment) error
	Delete(id string) error

	// Scores
	UpsertScore(score *models.AssessmentScore) error
	FindScores(assessmentID string) ([]models.AssessmentScore, error)
	FindScoresByGrade(grade string) ([]models.AssessmentScore, error)
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) FindByID(id string) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.First(&assessment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindAll(grade string, limit, offset int) ([]models.Assessment, error) {
	var assessments []models.Assessment
	q := r.db.Order("date_assigned DESC")
	if grade != "" {
		q = q.Where("grade = ?", grade)
	}
	err := q.Limit(limit).Offset(offset).Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) Create(assessment *models.Assessment) error {
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) Update(assessment *models.Assessment) error {
	return r.db.Save(assessment).Error
}

func (r *assessmentRepository) Delete(id string) error {
	result := r.db.Delete(&models.Assessment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

func (r *assessmentRepository) UpsertScore(score *models.AssessmentScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assessment_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "comment", "updated_at"}),
	}).Create(score).Error
}

func (r *assessmentRepository) FindScores(assessmentID string) ([]models.AssessmentScore, error) {
	var scores []models.AssessmentScore
	err := r.db.Preload("Student").Where("assessment_id = ?", assessmentID).Find(&scores).Error
	return scores, err
}

func (r *assessmentRepository) FindScoresByGrade(grade string) ([]models.AssessmentScore, error) {
	var scores []models.AssessmentScore
	err := r.db.Preload("Student").Preload("Assessment").
		Joins("JOIN assessments ON assessments.id = assessment_scores.assessment_id").
		Where("assessments.grade = ?", grade).
		Order("assessments.date_assigned").
		Find(&scores).Error
	return scores, err
}
