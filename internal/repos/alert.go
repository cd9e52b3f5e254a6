package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type AlertRepo interface {
	// CreateSkipDuplicates inserts the alerts, silently dropping any whose
	// dedupe key already exists. Returns the number actually created.
	CreateSkipDuplicates(ctx context.Context, tx *gorm.DB, alerts []*types.FinancialAlert) (int64, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FinancialAlert, error)
	// MarkRead flips read=true; the only mutation alerts ever receive.
	MarkRead(ctx context.Context, tx *gorm.DB, userID, alertID uuid.UUID) error
}

type alertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	repoLog := baseLog.With("repo", "AlertRepo")
	return &alertRepo{db: db, log: repoLog}
}

func (ar *alertRepo) CreateSkipDuplicates(ctx context.Context, tx *gorm.DB, alerts []*types.FinancialAlert) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(alerts) == 0 {
		return 0, nil
	}

	for _, a := range alerts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dedupe_key"}},
			DoNothing: true,
		}).
		Create(&alerts)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ar *alertRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.FinancialAlert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.FinancialAlert
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alertRepo) MarkRead(ctx context.Context, tx *gorm.DB, userID, alertID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.FinancialAlert{}).
		Where("id = ? AND user_id = ?", alertID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
