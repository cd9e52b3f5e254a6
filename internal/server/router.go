package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/finvita/backend/internal/handlers"
	"github.com/finvita/backend/internal/middleware"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/platform/envutil"
)

type Handlers struct {
	Healthcheck  *handlers.HealthcheckHandler
	Automation   *handlers.AutomationHandler
	Badge        *handlers.BadgeHandler
	Alert        *handlers.AlertHandler
	Gamification *handlers.GamificationHandler
}

func NewRouter(log *logger.Logger, h Handlers) *gin.Engine {
	if envutil.String("MODE", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	origins := envutil.String("CORS_ALLOWED_ORIGINS", "")
	if origins == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/healthcheck", h.Healthcheck.Healthcheck)

	// Cross-population operations; service-to-service callers only.
	service := router.Group("/")
	service.Use(middleware.RequireService(log))
	{
		service.POST("/trigger-process", h.Automation.TriggerProcess)
		service.POST("/lead-score", h.Automation.LeadScore)
		service.POST("/award-badge", h.Badge.AwardBadge)
	}

	// Per-user operations on behalf of the authenticated user.
	user := router.Group("/")
	user.Use(middleware.RequireUser(log))
	{
		user.POST("/smart-alerts", h.Alert.SmartAlerts)
		user.GET("/alerts", h.Alert.List)
		user.POST("/alerts/:id/read", h.Alert.MarkRead)
		user.POST("/streak-tick", h.Gamification.StreakTick)
	}

	return router
}
