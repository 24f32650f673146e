package repositories

import (
	"errors"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEvidenceNotFound = errors.New("evidence not found")

type EvidenceRepository interface {
	FindByID(id string) (*models.Evidence, error)
	FindByTeacher(teacherID string, limit, offset int) ([]models.Evidence, error)
	CountByTeacher(teacherID string) (int64, error)
	Create(evidence *models.Evidence) error
	Update(evidence *models.Evidence) error
	Delete(id string) error
}

type evidenceRepository struct {
	db *gorm.DB
}

func NewEvidenceRepository(db *gorm.DB) EvidenceRepository {
	return &evidenceRepository{db: db}
}

func (r *evidenceRepository) FindByID(id string) (*models.Evidence, error) {
	var evidence models.Evidence
	err := r.db.First(&evidence, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvidenceNotFound
		}
		return nil, err
	}
	return &evidence, nil
}

func (r *evidenceRepository) FindByTeacher(teacherID string, limit, offset int) ([]models.Evidence, error) {
	var items []models.Evidence
	err := r.db.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, err
}

func (r *evidenceRepository) CountByTeacher(teacherID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Evidence{}).Where("teacher_id = ?", teacherID).Count(&count).Error
	return count, err
}

func (r *evidenceRepository) Create(evidence *models.Evidence) error {
	return r.db.Create(evidence).Error
}

func (r *evidenceRepository) Update(evidence *models.Evidence) error {
	return r.db.Save(evidence).Error
}

func (r *evidenceRepository) Delete(id string) error {
	result := r.db.Delete(&models.Evidence{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEvidenceNotFound
	}
	return nil
}
