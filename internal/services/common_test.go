package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/repos/testutil"
)

// testDeps wires every repo and service against one rolled-back
// transaction, so each test sees a clean database.
type testDeps struct {
	tx  *gorm.DB
	log *logger.Logger

	profileRepo      repos.ProfileRepo
	diagnosticRepo   repos.DiagnosticRepo
	historyRepo      repos.DiagnosticHistoryRepo
	consultationRepo repos.ConsultationRepo
	contentRepo      repos.ContentProgressRepo
	journeyRepo      repos.JourneyEventRepo
	badgeRepo        repos.BadgeRepo
	gamificationRepo repos.GamificationRepo
	alertRepo        repos.AlertRepo
	triggerRepo      repos.TriggerRepo
	notificationRepo repos.NotificationRepo
	emailLogRepo     repos.EmailLogRepo
	goalRepo         repos.GoalRepo
	referralRepo     repos.ReferralRepo

	signals      SignalService
	scoring      ScoringService
	gamification GamificationService
	badges       BadgeService
	alerts       AlertService
	triggers     TriggerService
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	d := &testDeps{
		tx:               tx,
		log:              log,
		profileRepo:      repos.NewProfileRepo(tx, log),
		diagnosticRepo:   repos.NewDiagnosticRepo(tx, log),
		historyRepo:      repos.NewDiagnosticHistoryRepo(tx, log),
		consultationRepo: repos.NewConsultationRepo(tx, log),
		contentRepo:      repos.NewContentProgressRepo(tx, log),
		journeyRepo:      repos.NewJourneyEventRepo(tx, log),
		badgeRepo:        repos.NewBadgeRepo(tx, log),
		gamificationRepo: repos.NewGamificationRepo(tx, log),
		alertRepo:        repos.NewAlertRepo(tx, log),
		triggerRepo:      repos.NewTriggerRepo(tx, log),
		notificationRepo: repos.NewNotificationRepo(tx, log),
		emailLogRepo:     repos.NewEmailLogRepo(tx, log),
		goalRepo:         repos.NewGoalRepo(tx, log),
		referralRepo:     repos.NewReferralRepo(tx, log),
	}

	d.signals = NewSignalService(tx, log, d.diagnosticRepo, d.consultationRepo, d.contentRepo, d.journeyRepo)
	d.scoring = NewScoringService(tx, log, d.profileRepo, d.signals)
	d.gamification = NewGamificationService(tx, log, d.gamificationRepo, d.journeyRepo)
	d.badges = NewBadgeService(tx, log, d.badgeRepo, d.diagnosticRepo, d.historyRepo, d.consultationRepo, d.contentRepo, d.referralRepo, d.gamificationRepo, d.notificationRepo, d.journeyRepo, d.gamification)
	d.alerts = NewAlertService(tx, log, d.alertRepo, d.diagnosticRepo, d.goalRepo)
	d.triggers = NewTriggerService(tx, log, nil, nil, d.profileRepo, d.diagnosticRepo, d.triggerRepo, d.notificationRepo, d.emailLogRepo, d.journeyRepo, d.signals, d.scoring)

	return d
}
