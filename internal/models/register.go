package models

import "time"

// RegisterRecord is one attendance entry. One row per (student, date),
// upserted by the register service.
type RegisterRecord struct {
	BaseModel
	StudentID string         `gorm:"type:uuid;not null;index;uniqueIndex:idx_register_student_date" json:"student_id"`
	Date      time.Time      `gorm:"type:date;not null;index;uniqueIndex:idx_register_student_date" json:"date"`
	Status    RegisterStatus `gorm:"type:varchar(20);not null;default:'Present'" json:"status"`
	Comment   string         `gorm:"type:text" json:"comment,omitempty"`

	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}
