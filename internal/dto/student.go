package dto

type CreateStudentRequest struct {
	FirstName     string `json:"first_name" validate:"required,min=1,max=100"`
	LastName      string `json:"last_name" validate:"required,min=1,max=100"`
	Grade         string `json:"grade" validate:"required,grade_label"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
	ParentContact string `json:"parent_contact" validate:"omitempty,max=100"`
}

type UpdateStudentRequest struct {
	FirstName     *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName      *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Grade         *string `json:"grade" validate:"omitempty,grade_label"`
	Gender        *string `json:"gender" validate:"omitempty,oneof=male female other"`
	ParentContact *string `json:"parent_contact" validate:"omitempty,max=100"`
}

type ListStudentsQuery struct {
	Grade    string `form:"grade" validate:"omitempty,grade_label"`
	Page     int    `form:"page" validate:"omitempty,gte=1"`
	PageSize int    `form:"page_size" validate:"omitempty,gte=1,lte=200"`
}
