package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/finvita/backend/internal/engine"
	"github.com/finvita/backend/internal/pkg/logger"
	"github.com/finvita/backend/internal/platform/envutil"
	"github.com/finvita/backend/internal/platform/sendgrid"
	"github.com/finvita/backend/internal/repos"
	"github.com/finvita/backend/internal/types"
)

// ErrPassInProgress means another trigger pass holds the lock.
var ErrPassInProgress = errors.New("trigger pass already in progress")

const (
	triggerPassLockKey = "automation:trigger-pass"
	triggerPassLockTTL = 10 * time.Minute
)

type ProcessResult struct {
	TriggersProcessed int `json:"triggers_processed"`
	ActionsExecuted   int `json:"actions_executed"`
}

type TriggerService interface {
	// ProcessAll runs one full engine pass: rescore every user, then
	// sweep every active trigger over the population. A failing user or
	// action is logged and skipped; only infrastructure failures (the
	// trigger list or profile list being unreadable) abort the pass.
	ProcessAll(ctx context.Context) (*ProcessResult, error)
}

type triggerService struct {
	db               *gorm.DB
	log              *logger.Logger
	rdb              *redis.Client
	mailer           sendgrid.Client
	profileRepo      repos.ProfileRepo
	diagnosticRepo   repos.DiagnosticRepo
	triggerRepo      repos.TriggerRepo
	notificationRepo repos.NotificationRepo
	emailLogRepo     repos.EmailLogRepo
	journeyRepo      repos.JourneyEventRepo
	signals          SignalService
	scoring          ScoringService
	workers          int
}

// NewTriggerService wires the engine pass. rdb and mailer may be nil:
// without redis the overlap lock degrades to a no-op, and without a
// mail client email actions fail (and are audited as failed) instead of
// sending.
func NewTriggerService(
	db *gorm.DB,
	log *logger.Logger,
	rdb *redis.Client,
	mailer sendgrid.Client,
	profileRepo repos.ProfileRepo,
	diagnosticRepo repos.DiagnosticRepo,
	triggerRepo repos.TriggerRepo,
	notificationRepo repos.NotificationRepo,
	emailLogRepo repos.EmailLogRepo,
	journeyRepo repos.JourneyEventRepo,
	signals SignalService,
	scoring ScoringService,
) TriggerService {
	serviceLog := log.With("service", "TriggerService")
	workers := envutil.Int("TRIGGER_WORKERS", 8)
	if workers < 1 {
		workers = 1
	}
	return &triggerService{
		db:               db,
		log:              serviceLog,
		rdb:              rdb,
		mailer:           mailer,
		profileRepo:      profileRepo,
		diagnosticRepo:   diagnosticRepo,
		triggerRepo:      triggerRepo,
		notificationRepo: notificationRepo,
		emailLogRepo:     emailLogRepo,
		journeyRepo:      journeyRepo,
		signals:          signals,
		scoring:          scoring,
		workers:          workers,
	}
}

func (ts *triggerService) ProcessAll(ctx context.Context) (*ProcessResult, error) {
	release, err := ts.acquirePassLock(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	started := time.Now()

	triggers, err := ts.triggerRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing active triggers: %w", err)
	}

	userIDs, err := ts.profileRepo.ListIDs(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	ts.log.Info("Starting trigger pass",
		"triggers", len(triggers),
		"users", len(userIDs),
		"workers", ts.workers,
	)

	// Phase one: refresh every user's lead score and churn risk so the
	// churn_risk condition below reads current values, not last pass's.
	ts.rescoreAll(ctx, userIDs)

	profiles, err := ts.profileRepo.GetByIDs(ctx, nil, userIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}

	now := time.Now()
	snapshots := make(map[uuid.UUID]engine.SignalSnapshot, len(profiles))
	evaluable := make([]*types.Profile, 0, len(profiles))
	for _, profile := range profiles {
		snap, err := ts.signals.BuildSnapshot(ctx, nil, profile, now)
		if err != nil {
			ts.log.Warn("Skipping user; snapshot failed", "user_id", profile.ID, "error", err)
			continue
		}
		snapshots[profile.ID] = snap
		evaluable = append(evaluable, profile)
	}

	result := &ProcessResult{}
	for _, trigger := range triggers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		condition, action, err := ts.compile(trigger)
		if err != nil {
			ts.log.Error("Skipping malformed trigger",
				"trigger_id", trigger.ID,
				"trigger_name", trigger.Name,
				"error", err,
			)
			continue
		}

		matched := 0
		for _, profile := range evaluable {
			ok, err := condition.matches(ctx, ts, profile, snapshots[profile.ID], now)
			if err != nil {
				ts.log.Warn("Condition check failed; skipping user",
					"trigger_id", trigger.ID,
					"user_id", profile.ID,
					"error", err,
				)
				continue
			}
			if !ok {
				continue
			}
			matched++

			executed, err := action.execute(ctx, ts, trigger, profile)
			if err != nil {
				ts.log.Error("Action failed",
					"trigger_id", trigger.ID,
					"trigger_name", trigger.Name,
					"user_id", profile.ID,
					"error", err,
				)
				continue
			}
			if executed {
				result.ActionsExecuted++
			}
		}

		if err := ts.triggerRepo.StampExecuted(ctx, nil, trigger.ID, time.Now()); err != nil {
			ts.log.Error("Failed to stamp trigger execution", "trigger_id", trigger.ID, "error", err)
		}
		result.TriggersProcessed++

		ts.log.Info("Trigger sweep complete",
			"trigger_id", trigger.ID,
			"trigger_name", trigger.Name,
			"matched", matched,
		)
	}

	ts.log.Info("Trigger pass complete",
		"triggers_processed", result.TriggersProcessed,
		"actions_executed", result.ActionsExecuted,
		"elapsed", time.Since(started).String(),
	)
	return result, nil
}

// rescoreAll fans the scoring work out over a bounded worker pool. A
// user whose scoring fails keeps last pass's stored values.
func (ts *triggerService) rescoreAll(ctx context.Context, userIDs []uuid.UUID) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ts.workers)

	for _, id := range userIDs {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			if _, err := ts.scoring.ScoreUser(gctx, id); err != nil {
				ts.log.Warn("Rescore failed; keeping stored values", "user_id", id, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (ts *triggerService) acquirePassLock(ctx context.Context) (func(), error) {
	if ts.rdb == nil {
		return func() {}, nil
	}

	token := uuid.NewString()
	ok, err := ts.rdb.SetNX(ctx, triggerPassLockKey, token, triggerPassLockTTL).Result()
	if err != nil {
		// A flaky lock backend should not stop the pass.
		ts.log.Warn("Pass lock unavailable; proceeding without it", "error", err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrPassInProgress
	}

	return func() {
		if err := ts.rdb.Del(context.Background(), triggerPassLockKey).Err(); err != nil {
			ts.log.Warn("Failed to release pass lock; TTL will expire it", "error", err)
		}
	}, nil
}

// compiledCondition is a parsed, validated condition ready to evaluate
// against one user.
type compiledCondition interface {
	matches(ctx context.Context, ts *triggerService, profile *types.Profile, snap engine.SignalSnapshot, now time.Time) (bool, error)
}

// compiledAction executes against one matched user. The bool reports
// whether a real side effect happened (a tag already present executes
// to false without error).
type compiledAction interface {
	execute(ctx context.Context, ts *triggerService, trigger *types.AutomationTrigger, profile *types.Profile) (bool, error)
}

func (ts *triggerService) compile(trigger *types.AutomationTrigger) (compiledCondition, compiledAction, error) {
	condition, err := compileCondition(trigger.ConditionType, json.RawMessage(trigger.ConditionConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("condition: %w", err)
	}
	action, err := compileAction(trigger.ActionType, json.RawMessage(trigger.ActionConfig))
	if err != nil {
		return nil, nil, fmt.Errorf("action: %w", err)
	}
	return condition, action, nil
}

func compileCondition(conditionType string, raw json.RawMessage) (compiledCondition, error) {
	switch conditionType {
	case types.ConditionLowScore:
		c := lowScoreCondition{Threshold: 30}
		if err := decodeConfig(raw, &c); err != nil {
			return nil, err
		}
		return c, nil

	case types.ConditionIncompleteDiagnostic:
		c := incompleteDiagnosticCondition{Hours: 48}
		if err := decodeConfig(raw, &c); err != nil {
			return nil, err
		}
		if c.Hours <= 0 {
			return nil, fmt.Errorf("hours must be positive, got %d", c.Hours)
		}
		return c, nil

	case types.ConditionInactiveUser:
		c := inactiveUserCondition{Days: 7}
		if err := decodeConfig(raw, &c); err != nil {
			return nil, err
		}
		if c.Days <= 0 {
			return nil, fmt.Errorf("days must be positive, got %d", c.Days)
		}
		return c, nil

	case types.ConditionChurnRisk:
		c := churnRiskCondition{Level: types.ChurnRiskHigh}
		if err := decodeConfig(raw, &c); err != nil {
			return nil, err
		}
		switch c.Level {
		case types.ChurnRiskLow, types.ChurnRiskMedium, types.ChurnRiskHigh:
		default:
			return nil, fmt.Errorf("unknown churn risk level %q", c.Level)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown condition type %q", conditionType)
}

func compileAction(actionType string, raw json.RawMessage) (compiledAction, error) {
	switch actionType {
	case types.ActionEmail:
		a := emailAction{}
		if err := decodeConfig(raw, &a); err != nil {
			return nil, err
		}
		if a.Subject == "" {
			return nil, fmt.Errorf("email action requires a subject")
		}
		if a.EmailType == "" {
			a.EmailType = "automation"
		}
		return a, nil

	case types.ActionNotification:
		a := notificationAction{Type: "automation"}
		if err := decodeConfig(raw, &a); err != nil {
			return nil, err
		}
		if a.Title == "" || a.Message == "" {
			return nil, fmt.Errorf("notification action requires title and message")
		}
		return a, nil

	case types.ActionTag:
		a := tagAction{}
		if err := decodeConfig(raw, &a); err != nil {
			return nil, err
		}
		if a.Tag == "" {
			return nil, fmt.Errorf("tag action requires a tag")
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown action type %q", actionType)
}

func decodeConfig(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

type lowScoreCondition struct {
	Threshold int `json:"threshold"`
}

func (c lowScoreCondition) matches(_ context.Context, _ *triggerService, _ *types.Profile, snap engine.SignalSnapshot, _ time.Time) (bool, error) {
	return snap.HasCompletedDiagnostic && snap.DiagnosticScore < c.Threshold, nil
}

type incompleteDiagnosticCondition struct {
	Hours int `json:"hours"`
}

func (c incompleteDiagnosticCondition) matches(ctx context.Context, ts *triggerService, profile *types.Profile, _ engine.SignalSnapshot, now time.Time) (bool, error) {
	latest, err := ts.diagnosticRepo.LatestIncompleteByUser(ctx, nil, profile.ID)
	if err != nil {
		return false, err
	}
	if latest == nil {
		return false, nil
	}
	return now.Sub(latest.CreatedAt) > time.Duration(c.Hours)*time.Hour, nil
}

type inactiveUserCondition struct {
	Days int `json:"days"`
}

func (c inactiveUserCondition) matches(_ context.Context, _ *triggerService, _ *types.Profile, snap engine.SignalSnapshot, _ time.Time) (bool, error) {
	return snap.LastActivityDays >= c.Days, nil
}

type churnRiskCondition struct {
	Level string `json:"level"`
}

func (c churnRiskCondition) matches(_ context.Context, _ *triggerService, profile *types.Profile, _ engine.SignalSnapshot, _ time.Time) (bool, error) {
	return profile.ChurnRisk == c.Level, nil
}

type emailAction struct {
	EmailType   string `json:"email_type"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
}

func (a emailAction) execute(ctx context.Context, ts *triggerService, trigger *types.AutomationTrigger, profile *types.Profile) (bool, error) {
	entry := &types.EmailLog{
		ID:        uuid.New(),
		UserID:    profile.ID,
		TriggerID: &trigger.ID,
		EmailType: a.EmailType,
		Subject:   a.Subject,
		Status:    "sent",
	}

	var sendErr error
	if ts.mailer == nil {
		sendErr = fmt.Errorf("email client not configured")
	} else {
		_, sendErr = ts.mailer.Send(ctx, sendgrid.SendEmailRequest{
			To:         []sendgrid.EmailAddress{{Email: profile.Email, Name: profile.FullName}},
			Subject:    a.Subject,
			HTML:       a.HTMLContent,
			Categories: []string{"automation"},
			CustomArgs: map[string]string{"trigger_id": trigger.ID.String()},
		})
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.Error = sendErr.Error()
	}

	if _, err := ts.emailLogRepo.Create(ctx, nil, []*types.EmailLog{entry}); err != nil {
		ts.log.Error("Failed to write email log", "trigger_id", trigger.ID, "user_id", profile.ID, "error", err)
	}
	if sendErr != nil {
		return false, sendErr
	}
	return true, nil
}

type notificationAction struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (a notificationAction) execute(ctx context.Context, ts *triggerService, trigger *types.AutomationTrigger, profile *types.Profile) (bool, error) {
	data, _ := json.Marshal(map[string]string{"trigger_id": trigger.ID.String()})
	_, err := ts.notificationRepo.Create(ctx, nil, []*types.Notification{{
		ID:      uuid.New(),
		UserID:  profile.ID,
		Type:    a.Type,
		Title:   a.Title,
		Message: a.Message,
		Data:    datatypes.JSON(data),
	}})
	if err != nil {
		return false, err
	}
	return true, nil
}

type tagAction struct {
	Tag string `json:"tag"`
}

func (a tagAction) execute(ctx context.Context, ts *triggerService, trigger *types.AutomationTrigger, profile *types.Profile) (bool, error) {
	added, err := ts.profileRepo.AddTagIfAbsent(ctx, nil, profile.ID, a.Tag)
	if err != nil {
		return false, err
	}
	if !added {
		return false, nil
	}

	data, _ := json.Marshal(map[string]string{"tag": a.Tag, "trigger_id": trigger.ID.String()})
	if _, err := ts.journeyRepo.Create(ctx, nil, []*types.JourneyEvent{{
		ID:        uuid.New(),
		UserID:    profile.ID,
		EventType: types.JourneyEventTagAdded,
		Data:      datatypes.JSON(data),
	}}); err != nil {
		ts.log.Warn("Tag added but journey event failed", "user_id", profile.ID, "error", err)
	}
	return true, nil
}
