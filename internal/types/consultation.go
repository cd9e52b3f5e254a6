package types

import (
	"time"

	"github.com/google/uuid"
)

type Consultation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ScheduledAt time.Time `gorm:"not null;column:scheduled_at" json:"scheduled_at"`
	Status      string    `gorm:"not null;default:scheduled" json:"status"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Consultation) TableName() string { return "consultations" }
