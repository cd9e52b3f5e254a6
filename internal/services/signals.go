package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finvita/backend/internal/engine"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/types"
)

// SignalService assembles the per-user SignalSnapshot. All reads happen
// inside one transaction so the scorer and the churn assessor see the
// same logical instant.
type SignalService interface {
	BuildSnapshot(ctx context.Context, tx *gorm.DB, profile *types.Profile, now time.Time) (engine.SignalSnapshot, error)
}

type signalService struct {
	db               *gorm.DB
	log              *logger.Logger
	diagnosticRepo   repos.DiagnosticRepo
	consultationRepo repos.ConsultationRepo
	contentRepo      repos.ContentProgressRepo
	journeyRepo      repos.JourneyEventRepo
}

func NewSignalService(
	db *gorm.DB,
	log *logger.Logger,
	diagnosticRepo repos.DiagnosticRepo,
	consultationRepo repos.ConsultationRepo,
	contentRepo repos.ContentProgressRepo,
	journeyRepo repos.JourneyEventRepo,
) SignalService {
	serviceLog := log.With("service", "SignalService")
	return &signalService{
		db:               db,
		log:              serviceLog,
		diagnosticRepo:   diagnosticRepo,
		consultationRepo: consultationRepo,
		contentRepo:      contentRepo,
		journeyRepo:      journeyRepo,
	}
}

func (ss *signalService) BuildSnapshot(ctx context.Context, tx *gorm.DB, profile *types.Profile, now time.Time) (engine.SignalSnapshot, error) {
	if profile == nil {
		return engine.SignalSnapshot{}, fmt.Errorf("profile required")
	}

	if tx != nil {
		return ss.buildSnapshot(ctx, tx, profile, now)
	}

	var snapshot engine.SignalSnapshot
	err := ss.db.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		s, err := ss.buildSnapshot(ctx, inner, profile, now)
		if err != nil {
			return err
		}
		snapshot = s
		return nil
	})
	if err != nil {
		return engine.SignalSnapshot{}, err
	}
	return snapshot, nil
}

func (ss *signalService) buildSnapshot(ctx context.Context, tx *gorm.DB, profile *types.Profile, now time.Time) (engine.SignalSnapshot, error) {
	var snapshot engine.SignalSnapshot

	latest, err := ss.diagnosticRepo.LatestCompletedByUser(ctx, tx, profile.ID)
	if err != nil {
		return snapshot, fmt.Errorf("fetching latest diagnostic: %w", err)
	}
	if latest != nil {
		snapshot.HasCompletedDiagnostic = true
		snapshot.DiagnosticScore = latest.TotalScore
	}

	hasConsultation, err := ss.consultationRepo.HasAnyByUser(ctx, tx, profile.ID)
	if err != nil {
		return snapshot, fmt.Errorf("fetching consultations: %w", err)
	}
	snapshot.HasScheduledConsultation = hasConsultation

	engagement, err := ss.contentRepo.CountCompletedByUser(ctx, tx, profile.ID)
	if err != nil {
		return snapshot, fmt.Errorf("fetching content progress: %w", err)
	}
	snapshot.ContentEngagement = int(engagement)

	snapshot.DaysSinceSignup = daysBetween(profile.CreatedAt, now)

	lastEvent, err := ss.journeyRepo.LatestByUser(ctx, tx, profile.ID)
	if err != nil {
		return snapshot, fmt.Errorf("fetching journey events: %w", err)
	}
	if lastEvent != nil {
		snapshot.LastActivityDays = daysBetween(lastEvent.CreatedAt, now)
	} else {
		// No recorded activity at all: the signup itself is the last
		// thing we know the user did.
		snapshot.LastActivityDays = snapshot.DaysSinceSignup
	}

	return snapshot, nil
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
