package types

import (
	"time"

	"github.com/google/uuid"
)

// The closed set of badge types. Eligibility predicates live in the
// badge service; points per award are fixed.
const (
	BadgeFirstStep       = "first_step"
	BadgePersistent      = "persistent"
	BadgeEvolving        = "evolving"
	BadgeEducated        = "educated"
	BadgeConsultantReady = "consultant_ready"
	BadgeInfluencer      = "influencer"
	BadgeConsistent      = "consistent"
)

// BadgePoints is credited to the gamification ledger on every award.
const BadgePoints = 50

// UserBadge records a one-time achievement. The composite unique index is
// the award-once invariant: concurrent awards race on the constraint, not
// on an application-level check.
type UserBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_user_type" json:"user_id"`
	User      *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	BadgeType string    `gorm:"not null;uniqueIndex:idx_user_badges_user_type;column:badge_type" json:"badge_type"`
	AwardedAt time.Time `gorm:"not null;default:now();column:awarded_at" json:"awarded_at"`
}

func (UserBadge) TableName() string { return "user_badges" }

// KnownBadgeType reports whether t is one of the closed badge variants.
func KnownBadgeType(t string) bool {
	switch t {
	case BadgeFirstStep, BadgePersistent, BadgeEvolving, BadgeEducated,
		BadgeConsultantReady, BadgeInfluencer, BadgeConsistent:
		return true
	}
	return false
}
