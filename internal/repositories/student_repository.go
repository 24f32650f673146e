package repositories

import (
	"errors"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepository interface {
	FindByID(id string) (*models.Student, error)
	FindAll(grade string, limit, offset int) ([]models.Student, error)
	Create(student *models.Student) error
	Update(student *models.Student) error
	Delete(id string) error
	Count() (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByID(id string) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindAll(grade string, limit, offset int) ([]models.Student, error) {
	var students []models.Student
	q := r.db.Order("last_name, first_name")
	if grade != "" {
		q = q.Where("grade = ?", grade)
	}
	err := q.Limit(limit).Offset(offset).Find(&students).Error
	return students, err
}

func (r *studentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

func (r *studentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

func (r *studentRepository) Delete(id string) error {
	result := r.db.Delete(&models.Student{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *studentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Student{}).Count(&count).Error
	return count, err
}
