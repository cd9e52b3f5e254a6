package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type EmailLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.EmailLog) ([]*types.EmailLog, error)
}

type emailLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmailLogRepo(db *gorm.DB, baseLog *logger.Logger) EmailLogRepo {
	repoLog := baseLog.With("repo", "EmailLogRepo")
	return &emailLogRepo{db: db, log: repoLog}
}

func (er *emailLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.EmailLog) ([]*types.EmailLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(logs) == 0 {
		return []*types.EmailLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
