package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finvita/backend/internal/db"
	"github.com/finvita/backend/internal/handlers"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/platform/envutil"
	"github.com/finvita/backend/internal/platform/sendgrid"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/server"
	"github.com/finvita/backend/internal/services"
)

func main() {
	mode := envutil.String("MODE", "development")
	log, err := logger.New(mode)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	dbService, err := db.NewService(log)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to migrate database", "error", err)
	}
	database := dbService.DB()

	profileRepo := repos.NewProfileRepo(database, log)
	diagnosticRepo := repos.NewDiagnosticRepo(database, log)
	historyRepo := repos.NewDiagnosticHistoryRepo(database, log)
	consultationRepo := repos.NewConsultationRepo(database, log)
	contentRepo := repos.NewContentProgressRepo(database, log)
	journeyRepo := repos.NewJourneyEventRepo(database, log)
	badgeRepo := repos.NewBadgeRepo(database, log)
	gamificationRepo := repos.NewGamificationRepo(database, log)
	alertRepo := repos.NewAlertRepo(database, log)
	triggerRepo := repos.NewTriggerRepo(database, log)
	notificationRepo := repos.NewNotificationRepo(database, log)
	emailLogRepo := repos.NewEmailLogRepo(database, log)
	goalRepo := repos.NewGoalRepo(database, log)
	referralRepo := repos.NewReferralRepo(database, log)

	var rdb *redis.Client
	if addr := envutil.String("REDIS_ADDR", ""); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: envutil.String("REDIS_PASSWORD", ""),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable; trigger passes will run unlocked", "error", err)
			rdb = nil
		}
		cancel()
	} else {
		log.Warn("REDIS_ADDR not set; trigger passes will run unlocked")
	}

	var mailer sendgrid.Client
	if client, err := sendgrid.NewFromEnv(log); err != nil {
		log.Warn("SendGrid not configured; email actions will fail", "error", err)
	} else {
		mailer = client
	}

	signalService := services.NewSignalService(database, log, diagnosticRepo, consultationRepo, contentRepo, journeyRepo)
	scoringService := services.NewScoringService(database, log, profileRepo, signalService)
	gamificationService := services.NewGamificationService(database, log, gamificationRepo, journeyRepo)
	badgeService := services.NewBadgeService(database, log, badgeRepo, diagnosticRepo, historyRepo, consultationRepo, contentRepo, referralRepo, gamificationRepo, notificationRepo, journeyRepo, gamificationService)
	alertService := services.NewAlertService(database, log, alertRepo, diagnosticRepo, goalRepo)
	triggerService := services.NewTriggerService(database, log, rdb, mailer, profileRepo, diagnosticRepo, triggerRepo, notificationRepo, emailLogRepo, journeyRepo, signalService, scoringService)

	router := server.NewRouter(log, server.Handlers{
		Healthcheck:  handlers.NewHealthcheckHandler(),
		Automation:   handlers.NewAutomationHandler(log, triggerService, scoringService),
		Badge:        handlers.NewBadgeHandler(log, badgeService),
		Alert:        handlers.NewAlertHandler(log, alertService),
		Gamification: handlers.NewGamificationHandler(log, gamificationService, badgeService),
	})

	port := envutil.String("PORT", "8080")
	log.Info("Starting server", "port", port, "mode", mode)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
