package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type ContentProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentProgress) ([]*types.ContentProgress, error)
	CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type contentProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentProgressRepo(db *gorm.DB, baseLog *logger.Logger) ContentProgressRepo {
	repoLog := baseLog.With("repo", "ContentProgressRepo")
	return &contentProgressRepo{db: db, log: repoLog}
}

func (cr *contentProgressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentProgress) ([]*types.ContentProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(rows) == 0 {
		return []*types.ContentProgress{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (cr *contentProgressRepo) CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ContentProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
