package types

import (
	"time"

	"github.com/google/uuid"
)

// Alert priorities.
const (
	AlertPriorityLow    = "low"
	AlertPriorityMedium = "medium"
	AlertPriorityHigh   = "high"
)

// Alert types produced by the rule set.
const (
	AlertScoreDrop       = "score_drop"
	AlertScoreJump       = "score_jump"
	AlertStaleDiagnostic = "stale_diagnostic"
	AlertCriticalDebt    = "critical_debt"
	AlertGoalAlmostDone  = "goal_almost_done"
)

// FinancialAlert is created by the alert rule set and only ever mutated
// by the user (read=true). DedupeKey makes re-running a pass against
// unchanged data a no-op: (user, alert type, triggering row).
type FinancialAlert struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AlertType string    `gorm:"not null;column:alert_type" json:"alert_type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Priority  string    `gorm:"not null;default:medium" json:"priority"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	ActionURL string    `gorm:"column:action_url" json:"action_url"`
	DedupeKey string    `gorm:"not null;uniqueIndex;column:dedupe_key" json:"-"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (FinancialAlert) TableName() string { return "financial_alerts" }
