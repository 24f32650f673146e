package models

type Class struct {
	BaseModel
	Name         string `gorm:"size:200;not null" json:"name"`
	AcademicYear string `gorm:"size:50;not null" json:"academic_year"` // e.g. "2024-2025"

	Students []Student `gorm:"many2many:class_students;" json:"students,omitempty"`
}
