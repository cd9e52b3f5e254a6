package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/requestdata"
	"github.com/finvita/backend/internal/services"
)

type AlertHandler struct {
	log    *logger.Logger
	alerts services.AlertService
}

func NewAlertHandler(log *logger.Logger, alerts services.AlertService) *AlertHandler {
	return &AlertHandler{
		log:    log.With("handler", "AlertHandler"),
		alerts: alerts,
	}
}

// SmartAlerts runs the alert rule set for the authenticated user.
func (h *AlertHandler) SmartAlerts(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	created, err := h.alerts.GenerateForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Alert generation failed", "user_id", rd.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "alert generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alerts_created": created})
}

func (h *AlertHandler) List(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	alerts, err := h.alerts.ListForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		h.log.Error("Alert list failed", "user_id", rd.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "alert list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts})
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	rd, ok := requestdata.GetRequestData(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "alert id must be a uuid"})
		return
	}

	if err := h.alerts.MarkRead(c.Request.Context(), rd.UserID, alertID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "alert not found"})
			return
		}
		h.log.Error("Alert mark-read failed", "user_id", rd.UserID, "alert_id", alertID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "alert update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
