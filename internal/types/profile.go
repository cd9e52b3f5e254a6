package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Churn risk levels, ordered from least to most disengaged.
const (
	ChurnRiskLow    = "low"
	ChurnRiskMedium = "medium"
	ChurnRiskHigh   = "high"
)

// Lead classifications derived from the composite lead score.
const (
	LeadHot  = "hot"
	LeadWarm = "warm"
	LeadCold = "cold"
)

// Profile is the platform-owned customer record. LeadScore and ChurnRisk
// are written once per engine pass and never hand-edited.
type Profile struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FullName   string         `gorm:"column:full_name" json:"full_name"`
	Tags       datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags"`
	LeadScore  int            `gorm:"not null;default:0;column:lead_score" json:"lead_score"`
	ChurnRisk  string         `gorm:"not null;default:low;column:churn_risk" json:"churn_risk"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
