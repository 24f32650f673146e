package models

type Student struct {
	BaseModel
	FirstName     string `gorm:"size:100;not null" json:"first_name"`
	LastName      string `gorm:"size:100;not null" json:"last_name"`
	Grade         string `gorm:"size:10;not null;index" json:"grade"` // e.g. "10-9", "11-1"
	Gender        string `gorm:"size:20" json:"gender,omitempty"`
	ParentContact string `gorm:"size:100" json:"parent_contact,omitempty"`

	// Relations
	RegisterRecords []RegisterRecord  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Scores          []AssessmentScore `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Classes         []Class           `gorm:"many2many:class_students;" json:"-"`
}
