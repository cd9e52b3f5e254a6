package types

import (
	"time"

	"github.com/google/uuid"
)

// EmailLog audits every attempted email action, successful or not.
type EmailLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *Profile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TriggerID *uuid.UUID `gorm:"type:uuid;index;column:trigger_id" json:"trigger_id,omitempty"`
	EmailType string     `gorm:"not null;column:email_type" json:"email_type"`
	Subject   string     `gorm:"not null" json:"subject"`
	Status    string     `gorm:"not null;default:sent" json:"status"`
	Error     string     `gorm:"column:error" json:"error,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (EmailLog) TableName() string { return "email_logs" }
