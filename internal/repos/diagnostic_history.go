package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type DiagnosticHistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.DiagnosticHistory) ([]*types.DiagnosticHistory, error)
	// OldestTwoByUser returns up to two rows, oldest first. The evolving
	// badge compares exactly these.
	OldestTwoByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DiagnosticHistory, error)
}

type diagnosticHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiagnosticHistoryRepo(db *gorm.DB, baseLog *logger.Logger) DiagnosticHistoryRepo {
	repoLog := baseLog.With("repo", "DiagnosticHistoryRepo")
	return &diagnosticHistoryRepo{db: db, log: repoLog}
}

func (hr *diagnosticHistoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.DiagnosticHistory) ([]*types.DiagnosticHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	if len(rows) == 0 {
		return []*types.DiagnosticHistory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (hr *diagnosticHistoryRepo) OldestTwoByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.DiagnosticHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.DiagnosticHistory
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(2).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
