package types

import (
	"time"

	"github.com/google/uuid"
)

// Gamification tiers, lowest first. CurrentLevel is monotonically
// non-decreasing over the account's lifetime.
const (
	LevelBronze   = "bronze"
	LevelSilver   = "silver"
	LevelGold     = "gold"
	LevelPlatinum = "platinum"
	LevelDiamond  = "diamond"
)

type Gamification struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User         *Profile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	TotalPoints  int        `gorm:"not null;default:0;column:total_points" json:"total_points"`
	LevelPoints  int        `gorm:"not null;default:0;column:level_points" json:"level_points"`
	CurrentLevel string     `gorm:"not null;default:bronze;column:current_level" json:"current_level"`
	StreakDays   int        `gorm:"not null;default:0;column:streak_days" json:"streak_days"`
	LastStreakAt *time.Time `gorm:"column:last_streak_at" json:"last_streak_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Gamification) TableName() string { return "user_gamification" }
