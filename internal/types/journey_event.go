package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Journey event types recorded by the engine and its callers.
const (
	JourneyEventDiagnosticCompleted = "diagnostic_completed"
	JourneyEventConsultationBooked  = "consultation_booked"
	JourneyEventReferralCompleted   = "referral_completed"
	JourneyEventBadgeAwarded        = "badge_awarded"
	JourneyEventTagAdded            = "tag_added"
	JourneyEventStreakTick          = "streak_tick"
)

// JourneyEvent is a timestamped marker of customer activity. Inactivity
// conditions read the most recent row per user.
type JourneyEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *Profile       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	EventType string         `gorm:"not null;index;column:event_type" json:"event_type"`
	Data      datatypes.JSON `gorm:"type:jsonb;column:data" json:"data"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (JourneyEvent) TableName() string { return "customer_journey_events" }
