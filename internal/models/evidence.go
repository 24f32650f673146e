package models

// Evidence is an uploaded file owned by a teacher. The bytes live in the
// object storage backend; this row keeps the key and public URL.
type Evidence struct {
	BaseModel
	TeacherID   string `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Title       string `gorm:"size:200" json:"title,omitempty"`
	GPSection   string `gorm:"size:10" json:"gp_section,omitempty"` // GP1, GP2, ...
	Description string `gorm:"type:text" json:"description,omitempty"`
	Filename    string `gorm:"size:500;not null" json:"filename"`
	StorageKey  string `gorm:"size:500;not null" json:"-"`
	URL         string `gorm:"size:1000" json:"url,omitempty"`
	Size        int64  `json:"size"`
	ContentType string `gorm:"size:100" json:"content_type"`
}
