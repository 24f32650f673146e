package dto

type CreateAssessmentRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	Type         string `json:"type" validate:"required,oneof=Quiz Homework Project Test Exam"`
	TotalMarks   int    `json:"total_marks" validate:"required,gte=1"`
	DateAssigned string `json:"date_assigned" validate:"required,datetime=2006-01-02"`
	DateDue      string `json:"date_due" validate:"omitempty,datetime=2006-01-02"`
	Grade        string `json:"grade" validate:"required,grade_label"`
}

type UpdateAssessmentRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Type       *string `json:"type" validate:"omitempty,oneof=Quiz Homework Project Test Exam"`
	TotalMarks *int    `json:"total_marks" validate:"omitempty,gte=1"`
	DateDue    *string `json:"date_due" validate:"omitempty,datetime=2006-01-02"`
}

type UpsertScoreRequest struct {
	StudentID string  `json:"student_id" validate:"required,uuid4"`
	Score     float64 `json:"score" validate:"gte=0"`
	Comment   string  `json:"comment" validate:"omitempty,max=1000"`
}

type ListAssessmentsQuery struct {
	Grade    string `form:"grade" validate:"omitempty,grade_label"`
	Page     int    `form:"page" validate:"omitempty,gte=1"`
	PageSize int    `form:"page_size" validate:"omitempty,gte=1,lte=200"`
}
