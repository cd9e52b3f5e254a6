package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/services"
)

type BadgeHandler struct {
	log    *logger.Logger
	badges services.BadgeService
}

func NewBadgeHandler(log *logger.Logger, badges services.BadgeService) *BadgeHandler {
	return &BadgeHandler{
		log:    log.With("handler", "BadgeHandler"),
		badges: badges,
	}
}

type awardBadgeRequest struct {
	UserID    string `json:"userId" binding:"required"`
	BadgeType string `json:"badgeType" binding:"required"`
}

func (h *BadgeHandler) AwardBadge(c *gin.Context) {
	var req awardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId and badgeType are required"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId must be a uuid"})
		return
	}

	result, err := h.badges.TryAward(c.Request.Context(), userID, req.BadgeType)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownVariant) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown badge type"})
			return
		}
		h.log.Error("Badge award failed", "user_id", userID, "badge_type", req.BadgeType, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "badge award failed"})
		return
	}

	if !result.Awarded {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": result.Reason})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"badge":        result.Badge,
		"pointsEarned": result.PointsEarned,
	})
}
