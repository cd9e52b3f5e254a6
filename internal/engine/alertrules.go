package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/types"
)

// DiagnosticView is the slice of a completed diagnostic the alert rules
// read: identity, total, the debts dimension and its age.
type DiagnosticView struct {
	ID         uuid.UUID
	TotalScore int
	DebtsScore int
	HasDebts   bool
	CreatedAt  time.Time
}

// GoalView is the slice of a goal the alert rules read.
type GoalView struct {
	ID            uuid.UUID
	Title         string
	TargetAmount  float64
	CurrentAmount float64
	Status        string
}

// AlertDraft is an alert before persistence. DedupeKey ties the draft to
// the row that triggered it, so re-evaluating unchanged data produces
// the same keys and the storage layer drops the duplicates.
type AlertDraft struct {
	AlertType string
	Title     string
	Message   string
	Priority  string
	ActionURL string
	DedupeKey string
}

// EvaluateAlertRules runs the five independent rules over the two most
// recent completed diagnostics and the user's active goals. Rules are not
// mutually exclusive; each fires at most once per pass.
func EvaluateAlertRules(userID uuid.UUID, current, previous *DiagnosticView, goals []GoalView, now time.Time) []AlertDraft {
	var drafts []AlertDraft

	if current != nil && previous != nil {
		delta := current.TotalScore - previous.TotalScore
		if delta < -10 {
			drafts = append(drafts, AlertDraft{
				AlertType: types.AlertScoreDrop,
				Title:     "Score em Queda",
				Message:   fmt.Sprintf("Seu score de saúde financeira caiu %d pontos desde o último diagnóstico. Vamos reverter isso?", -delta),
				Priority:  types.AlertPriorityHigh,
				ActionURL: "/diagnostico",
				DedupeKey: dedupeKey(userID, types.AlertScoreDrop, current.ID),
			})
		}
		if delta > 15 {
			drafts = append(drafts, AlertDraft{
				AlertType: types.AlertScoreJump,
				Title:     "Parabéns! Score em Alta",
				Message:   fmt.Sprintf("Seu score subiu %d pontos. Continue assim!", delta),
				Priority:  types.AlertPriorityLow,
				ActionURL: "/dashboard",
				DedupeKey: dedupeKey(userID, types.AlertScoreJump, current.ID),
			})
		}
	}

	if current != nil {
		if days := int(now.Sub(current.CreatedAt).Hours() / 24); days > 90 {
			drafts = append(drafts, AlertDraft{
				AlertType: types.AlertStaleDiagnostic,
				Title:     "Hora de Atualizar",
				Message:   "Seu último diagnóstico tem mais de 90 dias. Refaça a avaliação para acompanhar sua evolução.",
				Priority:  types.AlertPriorityMedium,
				ActionURL: "/diagnostico",
				DedupeKey: dedupeKey(userID, types.AlertStaleDiagnostic, current.ID),
			})
		}
		if current.HasDebts && current.DebtsScore < 10 {
			drafts = append(drafts, AlertDraft{
				AlertType: types.AlertCriticalDebt,
				Title:     "Atenção às Dívidas",
				Message:   "Sua dimensão de dívidas está em nível crítico. Priorize a renegociação e um plano de quitação.",
				Priority:  types.AlertPriorityHigh,
				ActionURL: "/dividas",
				DedupeKey: dedupeKey(userID, types.AlertCriticalDebt, current.ID),
			})
		}
	}

	for _, g := range goals {
		if g.Status != types.GoalInProgress || g.TargetAmount <= 0 {
			continue
		}
		pct := g.CurrentAmount / g.TargetAmount * 100
		if pct >= 90 && pct < 100 {
			remaining := g.TargetAmount - g.CurrentAmount
			drafts = append(drafts, AlertDraft{
				AlertType: types.AlertGoalAlmostDone,
				Title:     "Quase Lá!",
				Message:   fmt.Sprintf("Faltam apenas R$ %.2f para concluir a meta \"%s\".", remaining, g.Title),
				Priority:  types.AlertPriorityMedium,
				ActionURL: "/metas",
				DedupeKey: dedupeKey(userID, types.AlertGoalAlmostDone, g.ID),
			})
		}
	}

	return drafts
}

func dedupeKey(userID uuid.UUID, alertType string, sourceID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", userID, alertType, sourceID)
}
