package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/engine"
	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
)

// ScoreResult is the outcome of scoring one user.
type ScoreResult struct {
	LeadScore      int                  `json:"lead_score"`
	Classification string               `json:"classification"`
	ChurnRisk      string               `json:"churn_risk"`
	Criteria       engine.ScoreCriteria `json:"criteria"`
}

type ScoringService interface {
	// ScoreUser recomputes and persists the user's lead score and churn
	// risk from a fresh snapshot.
	ScoreUser(ctx context.Context, userID uuid.UUID) (*ScoreResult, error)
}

type scoringService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
	signals     SignalService
}

func NewScoringService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo, signals SignalService) ScoringService {
	serviceLog := log.With("service", "ScoringService")
	return &scoringService{
		db:          db,
		log:         serviceLog,
		profileRepo: profileRepo,
		signals:     signals,
	}
}

func (sc *scoringService) ScoreUser(ctx context.Context, userID uuid.UUID) (*ScoreResult, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}

	var result ScoreResult
	err := sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profiles, err := sc.profileRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		if len(profiles) == 0 || profiles[0] == nil {
			return apperrors.ErrNotFound
		}
		profile := profiles[0]

		snapshot, err := sc.signals.BuildSnapshot(ctx, tx, profile, time.Now())
		if err != nil {
			return err
		}

		score, criteria := engine.LeadScore(snapshot)
		churn := engine.ChurnRisk(snapshot)

		if err := sc.profileRepo.UpdateScores(ctx, tx, profile.ID, score, churn); err != nil {
			return fmt.Errorf("persisting scores: %w", err)
		}

		result = ScoreResult{
			LeadScore:      score,
			Classification: engine.Classify(score),
			ChurnRisk:      churn,
			Criteria:       criteria,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sc.log.Debug("Scored user",
		"user_id", userID,
		"lead_score", result.LeadScore,
		"classification", result.Classification,
		"churn_risk", result.ChurnRisk,
	)
	return &result, nil
}
