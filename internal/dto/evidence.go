package dto

// UploadEvidenceForm is bound from the multipart form accompanying the file.
type UploadEvidenceForm struct {
	Title       string `form:"title" validate:"omitempty,max=200"`
	GPSection   string `form:"gp_section" validate:"omitempty,max=10"`
	Description string `form:"description" validate:"omitempty,max=2000"`
}

type ListEvidenceQuery struct {
	Page     int `form:"page" validate:"omitempty,gte=1"`
	PageSize int `form:"page_size" validate:"omitempty,gte=1,lte=200"`
}
