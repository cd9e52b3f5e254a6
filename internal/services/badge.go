package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/types"
)

// Award reasons surfaced to callers.
const (
	ReasonAlreadyAwarded = "already_awarded"
	ReasonNotEligible    = "not_eligible"
)

type AwardResult struct {
	Awarded      bool             `json:"awarded"`
	Reason       string           `json:"reason,omitempty"`
	Badge        *types.UserBadge `json:"badge,omitempty"`
	PointsEarned int              `json:"points_earned,omitempty"`
}

type BadgeService interface {
	// TryAward runs the (user, badgeType) state machine: short-circuit if
	// already awarded, evaluate eligibility, then insert-if-absent so two
	// racing callers cannot both award. On success the fixed point bonus
	// is credited and a notification plus journey event are written in
	// the same transaction.
	TryAward(ctx context.Context, userID uuid.UUID, badgeType string) (*AwardResult, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.UserBadge, error)
}

type badgeService struct {
	db               *gorm.DB
	log              *logger.Logger
	badgeRepo        repos.BadgeRepo
	diagnosticRepo   repos.DiagnosticRepo
	historyRepo      repos.DiagnosticHistoryRepo
	consultationRepo repos.ConsultationRepo
	contentRepo      repos.ContentProgressRepo
	referralRepo     repos.ReferralRepo
	gamificationRepo repos.GamificationRepo
	notificationRepo repos.NotificationRepo
	journeyRepo      repos.JourneyEventRepo
	gamification     GamificationService
}

func NewBadgeService(
	db *gorm.DB,
	log *logger.Logger,
	badgeRepo repos.BadgeRepo,
	diagnosticRepo repos.DiagnosticRepo,
	historyRepo repos.DiagnosticHistoryRepo,
	consultationRepo repos.ConsultationRepo,
	contentRepo repos.ContentProgressRepo,
	referralRepo repos.ReferralRepo,
	gamificationRepo repos.GamificationRepo,
	notificationRepo repos.NotificationRepo,
	journeyRepo repos.JourneyEventRepo,
	gamification GamificationService,
) BadgeService {
	serviceLog := log.With("service", "BadgeService")
	return &badgeService{
		db:               db,
		log:              serviceLog,
		badgeRepo:        badgeRepo,
		diagnosticRepo:   diagnosticRepo,
		historyRepo:      historyRepo,
		consultationRepo: consultationRepo,
		contentRepo:      contentRepo,
		referralRepo:     referralRepo,
		gamificationRepo: gamificationRepo,
		notificationRepo: notificationRepo,
		journeyRepo:      journeyRepo,
		gamification:     gamification,
	}
}

// Human-readable badge titles for the award notification.
var badgeTitles = map[string]string{
	types.BadgeFirstStep:       "Primeiro Passo",
	types.BadgePersistent:      "Persistente",
	types.BadgeEvolving:        "Em Evolução",
	types.BadgeEducated:        "Bem Informado",
	types.BadgeConsultantReady: "Pronto para Consultoria",
	types.BadgeInfluencer:      "Influenciador",
	types.BadgeConsistent:      "Consistente",
}

func (bs *badgeService) TryAward(ctx context.Context, userID uuid.UUID, badgeType string) (*AwardResult, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	if !types.KnownBadgeType(badgeType) {
		return nil, fmt.Errorf("%w: badge type %q", apperrors.ErrUnknownVariant, badgeType)
	}

	// Cheap short-circuit before any eligibility queries. The insert
	// below re-checks atomically, so this read is an optimization, not
	// the invariant.
	exists, err := bs.badgeRepo.Exists(ctx, nil, userID, badgeType)
	if err != nil {
		return nil, fmt.Errorf("checking existing badge: %w", err)
	}
	if exists {
		return &AwardResult{Awarded: false, Reason: ReasonAlreadyAwarded}, nil
	}

	eligible, err := bs.isEligible(ctx, userID, badgeType)
	if err != nil {
		// A failed eligibility query never awards.
		bs.log.Warn("Eligibility check failed; treating as not eligible",
			"user_id", userID,
			"badge_type", badgeType,
			"error", err,
		)
		return &AwardResult{Awarded: false, Reason: ReasonNotEligible}, nil
	}
	if !eligible {
		return &AwardResult{Awarded: false, Reason: ReasonNotEligible}, nil
	}

	var result *AwardResult
	err = bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		badge := &types.UserBadge{
			ID:        uuid.New(),
			UserID:    userID,
			BadgeType: badgeType,
			AwardedAt: time.Now(),
		}
		inserted, err := bs.badgeRepo.CreateIfAbsent(ctx, tx, badge)
		if err != nil {
			return fmt.Errorf("inserting badge: %w", err)
		}
		if !inserted {
			// Lost the race against a concurrent award.
			result = &AwardResult{Awarded: false, Reason: ReasonAlreadyAwarded}
			return nil
		}

		if _, err := bs.gamification.AddPoints(ctx, tx, userID, types.BadgePoints); err != nil {
			return fmt.Errorf("crediting badge points: %w", err)
		}

		title := badgeTitles[badgeType]
		if _, err := bs.notificationRepo.Create(ctx, tx, []*types.Notification{{
			ID:      uuid.New(),
			UserID:  userID,
			Type:    "badge_awarded",
			Title:   "Nova Conquista!",
			Message: fmt.Sprintf("Você ganhou a conquista \"%s\" e %d pontos.", title, types.BadgePoints),
			Data:    datatypes.JSON([]byte(fmt.Sprintf(`{"badge_type":%q}`, badgeType))),
		}}); err != nil {
			return fmt.Errorf("writing award notification: %w", err)
		}

		if _, err := bs.journeyRepo.Create(ctx, tx, []*types.JourneyEvent{{
			ID:        uuid.New(),
			UserID:    userID,
			EventType: types.JourneyEventBadgeAwarded,
			Data:      datatypes.JSON([]byte(fmt.Sprintf(`{"badge_type":%q}`, badgeType))),
		}}); err != nil {
			return fmt.Errorf("writing journey event: %w", err)
		}

		result = &AwardResult{Awarded: true, Badge: badge, PointsEarned: types.BadgePoints}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Awarded {
		bs.log.Info("Badge awarded", "user_id", userID, "badge_type", badgeType)
	}
	return result, nil
}

func (bs *badgeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.UserBadge, error) {
	return bs.badgeRepo.ListByUser(ctx, nil, userID)
}

func (bs *badgeService) isEligible(ctx context.Context, userID uuid.UUID, badgeType string) (bool, error) {
	now := time.Now()
	switch badgeType {
	case types.BadgeFirstStep:
		count, err := bs.diagnosticRepo.CountCompletedSince(ctx, nil, userID, time.Time{})
		return count >= 1, err

	case types.BadgePersistent:
		count, err := bs.diagnosticRepo.CountCompletedSince(ctx, nil, userID, now.AddDate(0, -3, 0))
		return count >= 3, err

	case types.BadgeEvolving:
		rows, err := bs.historyRepo.OldestTwoByUser(ctx, nil, userID)
		if err != nil {
			return false, err
		}
		if len(rows) < 2 {
			return false, nil
		}
		return rows[1].TotalScore-rows[0].TotalScore >= 20, nil

	case types.BadgeEducated:
		count, err := bs.contentRepo.CountCompletedByUser(ctx, nil, userID)
		return count >= 5, err

	case types.BadgeConsultantReady:
		return bs.consultationRepo.HasAnyByUser(ctx, nil, userID)

	case types.BadgeInfluencer:
		count, err := bs.referralRepo.CountCompletedByReferrer(ctx, nil, userID)
		return count >= 5, err

	case types.BadgeConsistent:
		row, err := bs.gamificationRepo.GetByUser(ctx, nil, userID)
		if err != nil {
			return false, err
		}
		return row != nil && row.StreakDays >= 30, nil
	}
	return false, fmt.Errorf("%w: badge type %q", apperrors.ErrUnknownVariant, badgeType)
}
