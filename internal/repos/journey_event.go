package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type JourneyEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.JourneyEvent) ([]*types.JourneyEvent, error)
	// LatestByUser returns nil when the user has no events yet.
	LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.JourneyEvent, error)
}

type journeyEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJourneyEventRepo(db *gorm.DB, baseLog *logger.Logger) JourneyEventRepo {
	repoLog := baseLog.With("repo", "JourneyEventRepo")
	return &journeyEventRepo{db: db, log: repoLog}
}

func (jr *journeyEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.JourneyEvent) ([]*types.JourneyEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	if len(events) == 0 {
		return []*types.JourneyEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (jr *journeyEventRepo) LatestByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.JourneyEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = jr.db
	}

	var result types.JourneyEvent
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
