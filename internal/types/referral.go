package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReferralPending   = "pending"
	ReferralCompleted = "completed"
)

type Referral struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReferrerID    uuid.UUID  `gorm:"type:uuid;not null;index;column:referrer_id" json:"referrer_id"`
	Referrer      *Profile   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ReferrerID;references:ID" json:"referrer,omitempty"`
	ReferredEmail string     `gorm:"not null;column:referred_email" json:"referred_email"`
	Status        string     `gorm:"not null;default:pending;index" json:"status"`
	CompletedAt   *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Referral) TableName() string { return "referrals" }
