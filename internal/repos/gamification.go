package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/types"
)

type GamificationRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Gamification, error)
	// GetOrCreateForUpdate loads the user's row under a row lock, creating
	// it at bronze/zero first if absent. Callers must run inside a
	// transaction; concurrent point awards serialize on the lock.
	GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Gamification, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.Gamification) error
}

type gamificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGamificationRepo(db *gorm.DB, baseLog *logger.Logger) GamificationRepo {
	repoLog := baseLog.With("repo", "GamificationRepo")
	return &gamificationRepo{db: db, log: repoLog}
}

func (gr *gamificationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Gamification, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.Gamification
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *gamificationRepo) GetOrCreateForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Gamification, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	// Insert-if-absent first so the locked read below always finds a row.
	seed := &types.Gamification{
		ID:           uuid.New(),
		UserID:       userID,
		CurrentLevel: types.LevelBronze,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(seed).Error; err != nil {
		return nil, err
	}

	var result types.Gamification
	if err := forUpdate(transaction.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *gamificationRepo) Save(ctx context.Context, tx *gorm.DB, row *types.Gamification) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Gamification{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"total_points":   row.TotalPoints,
			"level_points":   row.LevelPoints,
			"current_level":  row.CurrentLevel,
			"streak_days":    row.StreakDays,
			"last_streak_at": row.LastStreakAt,
		}).Error
}
