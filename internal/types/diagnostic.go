package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Diagnostic is an upstream financial self-assessment. The engine treats
// it as opaque input: a total score, per-dimension sub-scores and a
// completed flag supplied by an external collaborator.
type Diagnostic struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *Profile       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalScore      int            `gorm:"not null;default:0;column:total_score" json:"total_score"`
	DimensionScores datatypes.JSON `gorm:"type:jsonb;column:dimension_scores" json:"dimension_scores"`
	Completed       bool           `gorm:"not null;default:false;index" json:"completed"`
	CompletedAt     *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Diagnostic) TableName() string { return "diagnostics" }

// DimensionScoreSet is the decoded shape of DimensionScores.
type DimensionScoreSet struct {
	Income     int `json:"income"`
	Spending   int `json:"spending"`
	Debts      int `json:"debts"`
	Savings    int `json:"savings"`
	Protection int `json:"protection"`
}
