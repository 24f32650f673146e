package dto

type CreateClassRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	AcademicYear string `json:"academic_year" validate:"required,min=4,max=50"`
}

type UpdateClassRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	AcademicYear *string `json:"academic_year" validate:"omitempty,min=4,max=50"`
}

type EnrollStudentRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid4"`
}
