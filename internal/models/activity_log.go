package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is the append-only audit trail behind the admin dashboard.
// Writes are best-effort: a failed insert must never fail the operation
// being logged.
type ActivityLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    string         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	UserEmail string         `gorm:"size:255;index" json:"user_email,omitempty"`
	Action    string         `gorm:"size:100;not null;index" json:"action"`
	Resource  string         `gorm:"size:500" json:"resource,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"default:now();index" json:"created_at"`
}
