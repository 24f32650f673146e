package models

import "time"

type Assessment struct {
	BaseModel
	Title        string         `gorm:"size:200;not null" json:"title"`
	Type         AssessmentType `gorm:"type:varchar(20);not null" json:"type"`
	TotalMarks   int            `gorm:"not null" json:"total_marks"`
	DateAssigned time.Time      `gorm:"type:date;not null" json:"date_assigned"`
	DateDue      *time.Time     `gorm:"type:date" json:"date_due,omitempty"`
	Grade        string         `gorm:"size:10;not null;index" json:"grade"`

	Scores []AssessmentScore `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"-"`
}

// AssessmentScore records one student's score on an assessment.
type AssessmentScore struct {
	BaseModel
	AssessmentID string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_score_assessment_student" json:"assessment_id"`
	StudentID    string  `gorm:"type:uuid;not null;index;uniqueIndex:idx_score_assessment_student" json:"student_id"`
	Score        float64 `gorm:"not null" json:"score"`
	Comment      string  `gorm:"type:text" json:"comment,omitempty"`

	Assessment *Assessment `gorm:"foreignKey:AssessmentID" json:"-"`
	Student    *Student    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}
