package dto

type UpsertRegisterRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid4"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=Present Absent Late Excused"`
	Comment   string `json:"comment" validate:"omitempty,max=1000"`
}

type ListRegisterQuery struct {
	Date      string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	StudentID string `form:"student_id" validate:"omitempty,uuid4"`
	From      string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}
