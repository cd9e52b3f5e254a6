package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Closed set of trigger condition types.
const (
	ConditionLowScore             = "low_score"
	ConditionIncompleteDiagnostic = "incomplete_diagnostic"
	ConditionInactiveUser         = "inactive_user"
	ConditionChurnRisk            = "churn_risk"
)

// Closed set of trigger action types.
const (
	ActionEmail        = "email"
	ActionNotification = "notification"
	ActionTag          = "tag"
)

// AutomationTrigger is an operator-managed condition/action pair evaluated
// against the whole user population. Triggers are deactivated, not
// deleted. LastExecutedAt is stamped after every full sweep regardless of
// match count; it is bookkeeping, not a throttle.
type AutomationTrigger struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	ConditionType   string         `gorm:"not null;column:condition_type" json:"condition_type"`
	ConditionConfig datatypes.JSON `gorm:"type:jsonb;column:condition_config" json:"condition_config"`
	ActionType      string         `gorm:"not null;column:action_type" json:"action_type"`
	ActionConfig    datatypes.JSON `gorm:"type:jsonb;column:action_config" json:"action_config"`
	IsActive        bool           `gorm:"not null;default:true;index;column:is_active" json:"is_active"`
	LastExecutedAt  *time.Time     `gorm:"column:last_executed_at" json:"last_executed_at,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (AutomationTrigger) TableName() string { return "automation_triggers" }
