package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/engine"
	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/types"
)

type AlertService interface {
	// GenerateForUser evaluates the alert rule set against the user's
	// current data and persists whatever fired. Returns the number of
	// alerts actually created; re-running against unchanged data creates
	// zero thanks to dedupe keys.
	GenerateForUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.FinancialAlert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) error
}

type alertService struct {
	db             *gorm.DB
	log            *logger.Logger
	alertRepo      repos.AlertRepo
	diagnosticRepo repos.DiagnosticRepo
	goalRepo       repos.GoalRepo
}

func NewAlertService(db *gorm.DB, log *logger.Logger, alertRepo repos.AlertRepo, diagnosticRepo repos.DiagnosticRepo, goalRepo repos.GoalRepo) AlertService {
	serviceLog := log.With("service", "AlertService")
	return &alertService{
		db:             db,
		log:            serviceLog,
		alertRepo:      alertRepo,
		diagnosticRepo: diagnosticRepo,
		goalRepo:       goalRepo,
	}
}

func (as *alertService) GenerateForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, apperrors.ErrInvalidArgument
	}

	var created int64
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		diagnostics, err := as.diagnosticRepo.TwoLatestCompletedByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("fetching diagnostics: %w", err)
		}

		var current, previous *engine.DiagnosticView
		if len(diagnostics) > 0 {
			current = as.diagnosticView(diagnostics[0])
		}
		if len(diagnostics) > 1 {
			previous = as.diagnosticView(diagnostics[1])
		}

		goals, err := as.goalRepo.ListInProgressByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("fetching goals: %w", err)
		}
		goalViews := make([]engine.GoalView, 0, len(goals))
		for _, g := range goals {
			goalViews = append(goalViews, engine.GoalView{
				ID:            g.ID,
				Title:         g.Title,
				TargetAmount:  g.TargetAmount,
				CurrentAmount: g.CurrentAmount,
				Status:        g.Status,
			})
		}

		drafts := engine.EvaluateAlertRules(userID, current, previous, goalViews, time.Now())
		if len(drafts) == 0 {
			return nil
		}

		alerts := make([]*types.FinancialAlert, 0, len(drafts))
		for _, d := range drafts {
			alerts = append(alerts, &types.FinancialAlert{
				ID:        uuid.New(),
				UserID:    userID,
				AlertType: d.AlertType,
				Title:     d.Title,
				Message:   d.Message,
				Priority:  d.Priority,
				ActionURL: d.ActionURL,
				DedupeKey: d.DedupeKey,
			})
		}

		created, err = as.alertRepo.CreateSkipDuplicates(ctx, tx, alerts)
		return err
	})
	if err != nil {
		return 0, err
	}

	as.log.Debug("Alert pass for user", "user_id", userID, "alerts_created", created)
	return int(created), nil
}

func (as *alertService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.FinancialAlert, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrInvalidArgument
	}
	return as.alertRepo.ListByUser(ctx, nil, userID)
}

func (as *alertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) error {
	if userID == uuid.Nil || alertID == uuid.Nil {
		return apperrors.ErrInvalidArgument
	}
	if err := as.alertRepo.MarkRead(ctx, nil, userID, alertID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return nil
}

// diagnosticView decodes the debts dimension out of the stored
// per-dimension scores. An unreadable blob counts as "no debt data".
func (as *alertService) diagnosticView(d *types.Diagnostic) *engine.DiagnosticView {
	view := &engine.DiagnosticView{
		ID:         d.ID,
		TotalScore: d.TotalScore,
		CreatedAt:  d.CreatedAt,
	}
	if len(d.DimensionScores) > 0 {
		var dims types.DimensionScoreSet
		if err := json.Unmarshal(d.DimensionScores, &dims); err != nil {
			as.log.Warn("Unreadable dimension scores", "diagnostic_id", d.ID, "error", err)
		} else {
			view.DebtsScore = dims.Debts
			view.HasDebts = true
		}
	}
	return view
}
