package types

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosticHistory is an append-only record of completed diagnostic
// scores, kept so badge predicates can compare early results without
// touching the raw question/answer content.
type DiagnosticHistory struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *Profile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DiagnosticID *uuid.UUID `gorm:"type:uuid;index" json:"diagnostic_id,omitempty"`
	TotalScore   int        `gorm:"not null;default:0;column:total_score" json:"total_score"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (DiagnosticHistory) TableName() string { return "diagnostic_history" }
