package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type ReferralRepo interface {
	Create(ctx context.Context, tx *gorm.DB, referrals []*types.Referral) ([]*types.Referral, error)
	CountCompletedByReferrer(ctx context.Context, tx *gorm.DB, referrerID uuid.UUID) (int64, error)
}

type referralRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferralRepo(db *gorm.DB, baseLog *logger.Logger) ReferralRepo {
	repoLog := baseLog.With("repo", "ReferralRepo")
	return &referralRepo{db: db, log: repoLog}
}

func (rr *referralRepo) Create(ctx context.Context, tx *gorm.DB, referrals []*types.Referral) ([]*types.Referral, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(referrals) == 0 {
		return []*types.Referral{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

func (rr *referralRepo) CountCompletedByReferrer(ctx context.Context, tx *gorm.DB, referrerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Referral{}).
		Where("referrer_id = ? AND status = ?", referrerID, types.ReferralCompleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
