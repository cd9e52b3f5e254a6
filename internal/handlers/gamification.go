package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/requestdata"
	"github.com/finvita/backend/internal/services"
	"github.com/finvita/backend/internal/types"
)

type GamificationHandler struct {
	log          *logger.Logger
	gamification services.GamificationService
	badges       services.BadgeService
}

func NewGamificationHandler(log *logger.Logger, gamification services.GamificationService, badges services.BadgeService) *GamificationHandler {
	return &GamificationHandler{
		log:          log.With("handler", "GamificationHandler"),
		gamification: gamification,
		badges:       badges,
	}
}

// StreakTick records today's activity for the authenticated user's
// daily streak. Safe to call more than once a day. A streak reaching 30
// days qualifies for the consistency badge, checked inline.
func (h *GamificationHandler) StreakTick(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	row, err := h.gamification.TickStreak(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Streak tick failed", "user_id", rd.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "streak update failed"})
		return
	}

	badgeAwarded := false
	if row.StreakDays >= 30 {
		result, err := h.badges.TryAward(c.Request.Context(), rd.UserID, types.BadgeConsistent)
		if err != nil {
			// The streak itself succeeded; the badge will be retried on
			// the next tick.
			h.log.Warn("Consistency badge check failed", "user_id", rd.UserID, "error", err)
		} else {
			badgeAwarded = result.Awarded
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"streakDays":   row.StreakDays,
		"totalPoints":  row.TotalPoints,
		"level":        row.CurrentLevel,
		"badgeAwarded": badgeAwarded,
	})
}
