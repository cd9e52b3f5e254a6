package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/engine"
	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/types"
)

type GamificationService interface {
	// AddPoints folds delta into the user's ledger under a row lock.
	// Safe for concurrent callers; lost updates are impossible because
	// the read and write happen inside one locked transaction.
	AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (*types.Gamification, error)
	// TickStreak advances the daily streak. Idempotent within a calendar
	// day; a gap longer than one day resets the streak to 1.
	TickStreak(ctx context.Context, userID uuid.UUID) (*types.Gamification, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*types.Gamification, error)
}

type gamificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	gamificationRepo repos.GamificationRepo
	journeyRepo      repos.JourneyEventRepo
}

func NewGamificationService(db *gorm.DB, log *logger.Logger, gamificationRepo repos.GamificationRepo, journeyRepo repos.JourneyEventRepo) GamificationService {
	serviceLog := log.With("service", "GamificationService")
	return &gamificationService{
		db:               db,
		log:              serviceLog,
		gamificationRepo: gamificationRepo,
		journeyRepo:      journeyRepo,
	}
}

func (gs *gamificationService) AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (*types.Gamification, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}

	apply := func(inner *gorm.DB) (*types.Gamification, error) {
		row, err := gs.gamificationRepo.GetOrCreateForUpdate(ctx, inner, userID)
		if err != nil {
			return nil, err
		}

		next := engine.ApplyPoints(engine.Progress{
			TotalPoints: row.TotalPoints,
			LevelPoints: row.LevelPoints,
			Level:       row.CurrentLevel,
		}, delta)

		if promoted := next.Level != row.CurrentLevel; promoted {
			gs.log.Info("User promoted",
				"user_id", userID,
				"from", row.CurrentLevel,
				"to", next.Level,
			)
		}

		row.TotalPoints = next.TotalPoints
		row.LevelPoints = next.LevelPoints
		row.CurrentLevel = next.Level
		if err := gs.gamificationRepo.Save(ctx, inner, row); err != nil {
			return nil, err
		}
		return row, nil
	}

	if tx != nil {
		return apply(tx)
	}

	var result *types.Gamification
	err := gs.db.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		row, err := apply(inner)
		if err != nil {
			return err
		}
		result = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (gs *gamificationService) TickStreak(ctx context.Context, userID uuid.UUID) (*types.Gamification, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}

	now := time.Now()
	var result *types.Gamification
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := gs.gamificationRepo.GetOrCreateForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		if row.LastStreakAt != nil && sameDay(*row.LastStreakAt, now) {
			result = row
			return nil
		}

		if row.LastStreakAt != nil && sameDay(row.LastStreakAt.AddDate(0, 0, 1), now) {
			row.StreakDays++
		} else {
			row.StreakDays = 1
		}
		row.LastStreakAt = &now

		if err := gs.gamificationRepo.Save(ctx, tx, row); err != nil {
			return err
		}

		if _, err := gs.journeyRepo.Create(ctx, tx, []*types.JourneyEvent{{
			ID:        uuid.New(),
			UserID:    userID,
			EventType: types.JourneyEventStreakTick,
		}}); err != nil {
			return err
		}

		result = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (gs *gamificationService) GetByUser(ctx context.Context, userID uuid.UUID) (*types.Gamification, error) {
	row, err := gs.gamificationRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperrors.ErrNotFound
	}
	return row, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
