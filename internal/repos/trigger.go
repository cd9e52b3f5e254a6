package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type TriggerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, triggers []*types.AutomationTrigger) ([]*types.AutomationTrigger, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.AutomationTrigger, error)
	// StampExecuted records the end of a full sweep for the trigger,
	// match count notwithstanding.
	StampExecuted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type triggerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTriggerRepo(db *gorm.DB, baseLog *logger.Logger) TriggerRepo {
	repoLog := baseLog.With("repo", "TriggerRepo")
	return &triggerRepo{db: db, log: repoLog}
}

func (tr *triggerRepo) Create(ctx context.Context, tx *gorm.DB, triggers []*types.AutomationTrigger) ([]*types.AutomationTrigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(triggers) == 0 {
		return []*types.AutomationTrigger{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&triggers).Error; err != nil {
		return nil, err
	}
	return triggers, nil
}

func (tr *triggerRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.AutomationTrigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.AutomationTrigger
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *triggerRepo) StampExecuted(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AutomationTrigger{}).
		Where("id = ?", id).
		Update("last_executed_at", at).Error
}
