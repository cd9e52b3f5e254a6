package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentProgress tracks a user's engagement with a single content item.
// The lead score only cares about the count of completed rows.
type ContentProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_content_progress_user_content,unique" json:"user_id"`
	User        *Profile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ContentID   string     `gorm:"not null;index:idx_content_progress_user_content,unique;column:content_id" json:"content_id"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContentProgress) TableName() string { return "user_content_progress" }
