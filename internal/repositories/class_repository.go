package repositories

import (
	"errors"

	"markbook_backend/internal/models"

	"gorm.io/gorm"
)

var ErrClassNotFound = errors.New("class not found")

type ClassRepository interface {
	FindByID(id string) (*models.Class, error)
	FindAll(limit, offset int) ([]models.Class, error)
	Create(class *models.Class) error
	Update(class *models.Class) error
	Delete(id string) error

	AddStudent(classID string, student *models.Student) error
	RemoveStudent(classID string, student *models.Student) error
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) FindByID(id string) (*models.Class, error) {
	var class models.Class
	err := r.db.Preload("Students").First(&class, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &class, nil
}

func (r *classRepository) FindAll(limit, offset int) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.Order("academic_year DESC, name").Limit(limit).Offset(offset).Find(&classes).Error
	return classes, err
}

func (r *classRepository) Create(class *models.Class) error {
	return r.db.Create(class).Error
}

func (r *classRepository) Update(class *models.Class) error {
	return r.db.Save(class).Error
}

func (r *classRepository) Delete(id string) error {
	result := r.db.Select("Students").Delete(&models.Class{BaseModel: models.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *classRepository) AddStudent(classID string, student *models.Student) error {
	return r.db.Model(&models.Class{BaseModel: models.BaseModel{ID: classID}}).
		Association("Students").Append(student)
}

func (r *classRepository) RemoveStudent(classID string, student *models.Student) error {
	return r.db.Model(&models.Class{BaseModel: models.BaseModel{ID: classID}}).
		Association("Students").Delete(student)
}
