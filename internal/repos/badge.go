package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type BadgeRepo interface {
	// CreateIfAbsent inserts the badge unless the (user, badge type) pair
	// already exists. Returns false on conflict. This is the single atomic
	// step the award-once invariant rests on; there is deliberately no
	// separate existence check to race against.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, badge *types.UserBadge) (bool, error)
	Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeType string) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBadge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	repoLog := baseLog.With("repo", "BadgeRepo")
	return &badgeRepo{db: db, log: repoLog}
}

func (br *badgeRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, badge *types.UserBadge) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if badge.ID == uuid.Nil {
		badge.ID = uuid.New()
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_type"}},
			DoNothing: true,
		}).
		Create(badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (br *badgeRepo) Exists(ctx context.Context, tx *gorm.DB, userID uuid.UUID, badgeType string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserBadge{}).
		Where("user_id = ? AND badge_type = ?", userID, badgeType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (br *badgeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserBadge, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.UserBadge
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
