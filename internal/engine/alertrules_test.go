package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/types"
)

func TestAlertRulesScoreDrop(t *testing.T) {
	now := time.Now()
	userID := uuid.New()
	current := &DiagnosticView{ID: uuid.New(), TotalScore: 50, HasDebts: true, DebtsScore: 15, CreatedAt: now}
	previous := &DiagnosticView{ID: uuid.New(), TotalScore: 65, CreatedAt: now.AddDate(0, -1, 0)}

	drafts := EvaluateAlertRules(userID, current, previous, nil, now)
	if len(drafts) != 1 {
		t.Fatalf("expected exactly the drop alert, got %d: %+v", len(drafts), drafts)
	}
	d := drafts[0]
	if d.AlertType != types.AlertScoreDrop || d.Priority != types.AlertPriorityHigh {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestAlertRulesDropBoundary(t *testing.T) {
	now := time.Now()
	// A drop of exactly 10 does not fire.
	current := &DiagnosticView{ID: uuid.New(), TotalScore: 55, HasDebts: true, DebtsScore: 20, CreatedAt: now}
	previous := &DiagnosticView{ID: uuid.New(), TotalScore: 65, CreatedAt: now}
	if drafts := EvaluateAlertRules(uuid.New(), current, previous, nil, now); len(drafts) != 0 {
		t.Fatalf("drop of 10 must not fire, got %+v", drafts)
	}
}

func TestAlertRulesScoreJump(t *testing.T) {
	now := time.Now()
	current := &DiagnosticView{ID: uuid.New(), TotalScore: 85, HasDebts: true, DebtsScore: 40, CreatedAt: now}
	previous := &DiagnosticView{ID: uuid.New(), TotalScore: 60, CreatedAt: now}

	drafts := EvaluateAlertRules(uuid.New(), current, previous, nil, now)
	if len(drafts) != 1 || drafts[0].AlertType != types.AlertScoreJump {
		t.Fatalf("expected jump alert, got %+v", drafts)
	}
	if drafts[0].Priority != types.AlertPriorityLow {
		t.Fatalf("jump alert must be low priority, got %s", drafts[0].Priority)
	}
}

func TestAlertRulesStaleAndDebt(t *testing.T) {
	now := time.Now()
	current := &DiagnosticView{
		ID:         uuid.New(),
		TotalScore: 40,
		HasDebts:   true,
		DebtsScore: 5,
		CreatedAt:  now.AddDate(0, 0, -120),
	}

	drafts := EvaluateAlertRules(uuid.New(), current, nil, nil, now)
	if len(drafts) != 2 {
		t.Fatalf("expected stale + debt alerts, got %d: %+v", len(drafts), drafts)
	}
	seen := map[string]bool{}
	for _, d := range drafts {
		seen[d.AlertType] = true
	}
	if !seen[types.AlertStaleDiagnostic] || !seen[types.AlertCriticalDebt] {
		t.Fatalf("missing rule outputs: %+v", seen)
	}
}

func TestAlertRulesGoalNearCompletion(t *testing.T) {
	now := time.Now()
	goals := []GoalView{
		{ID: uuid.New(), Title: "Reserva", TargetAmount: 1000, CurrentAmount: 950, Status: types.GoalInProgress},
		{ID: uuid.New(), Title: "Feita", TargetAmount: 1000, CurrentAmount: 1000, Status: types.GoalInProgress},
		{ID: uuid.New(), Title: "Longe", TargetAmount: 1000, CurrentAmount: 100, Status: types.GoalInProgress},
		{ID: uuid.New(), Title: "Parada", TargetAmount: 1000, CurrentAmount: 950, Status: types.GoalAbandoned},
	}

	drafts := EvaluateAlertRules(uuid.New(), nil, nil, goals, now)
	if len(drafts) != 1 {
		t.Fatalf("expected one goal alert, got %d: %+v", len(drafts), drafts)
	}
	if drafts[0].AlertType != types.AlertGoalAlmostDone {
		t.Fatalf("unexpected type %s", drafts[0].AlertType)
	}
}

func TestAlertRulesDedupeKeysStable(t *testing.T) {
	now := time.Now()
	userID := uuid.New()
	current := &DiagnosticView{ID: uuid.New(), TotalScore: 40, HasDebts: true, DebtsScore: 5, CreatedAt: now}

	first := EvaluateAlertRules(userID, current, nil, nil, now)
	second := EvaluateAlertRules(userID, current, nil, nil, now)
	if len(first) != len(second) {
		t.Fatalf("rule set is not deterministic: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].DedupeKey == "" {
			t.Fatalf("draft %d missing dedupe key", i)
		}
		if first[i].DedupeKey != second[i].DedupeKey {
			t.Fatalf("dedupe key changed between passes: %s vs %s", first[i].DedupeKey, second[i].DedupeKey)
		}
	}
}
