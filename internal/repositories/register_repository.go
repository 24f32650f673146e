package repositories

import (
	"errors"
	"time"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRegisterRecordNotFound = errors.New("register record not found")

type RegisterRepository interface {
	// Upsert writes the attendance entry for (student, date); a second write
	// for the same key overwrites status and comment.
	Upsert(record *models.RegisterRecord) error
	FindByDate(date time.Time) ([]models.RegisterRecord, error)
	FindByStudent(studentID string, from, to *time.Time) ([]models.RegisterRecord, error)
	Delete(id string) error
}

type registerRepository struct {
	db *gorm.DB
}

func NewRegisterRepository(db *gorm.DB) RegisterRepository {
	return &registerRepository{db: db}
}

func (r *registerRepository) Upsert(record *models.RegisterRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "comment", "updated_at"}),
	}).Create(record).Error
}

func (r *registerRepository) FindByDate(date time.Time) ([]models.RegisterRecord, error) {
	var records []models.RegisterRecord
	err := r.db.Preload("Student").Where("date = ?", date).Find(&records).Error
	return records, err
}

func (r *registerRepository) FindByStudent(studentID string, from, to *time.Time) ([]models.RegisterRecord, error) {
	var records []models.RegisterRecord
	q := r.db.Where("student_id = ?", studentID).Order("date DESC")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	err := q.Find(&records).Error
	return records, err
}

func (r *registerRepository) Delete(id string) error {
	result := r.db.Delete(&models.RegisterRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegisterRecordNotFound
	}
	return nil
}
