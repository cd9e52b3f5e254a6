package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	GoalInProgress = "in_progress"
	GoalCompleted  = "completed"
	GoalAbandoned  = "abandoned"
)

type Goal struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title         string    `gorm:"not null" json:"title"`
	TargetAmount  float64   `gorm:"not null;column:target_amount" json:"target_amount"`
	CurrentAmount float64   `gorm:"not null;default:0;column:current_amount" json:"current_amount"`
	Status        string    `gorm:"not null;default:in_progress;index" json:"status"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Goal) TableName() string { return "goals" }
