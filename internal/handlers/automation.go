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

// AutomationHandler exposes the engine's service-to-service surface:
// the full trigger pass and on-demand scoring of one user.
type AutomationHandler struct {
	log      *logger.Logger
	triggers services.TriggerService
	scoring  services.ScoringService
}

func NewAutomationHandler(log *logger.Logger, triggers services.TriggerService, scoring services.ScoringService) *AutomationHandler {
	return &AutomationHandler{
		log:      log.With("handler", "AutomationHandler"),
		triggers: triggers,
		scoring:  scoring,
	}
}

func (h *AutomationHandler) TriggerProcess(c *gin.Context) {
	result, err := h.triggers.ProcessAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrPassInProgress) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "a trigger pass is already running"})
			return
		}
		h.log.Error("Trigger pass failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "trigger pass failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"triggersProcessed": result.TriggersProcessed,
		"actionsExecuted":   result.ActionsExecuted,
	})
}

type leadScoreRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *AutomationHandler) LeadScore(c *gin.Context) {
	var req leadScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId is required"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "userId must be a uuid"})
		return
	}

	result, err := h.scoring.ScoreUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
			return
		}
		h.log.Error("Lead scoring failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "lead scoring failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"leadScore":      result.LeadScore,
		"classification": result.Classification,
		"churnRisk":      result.ChurnRisk,
		"criteria":       result.Criteria,
	})
}
