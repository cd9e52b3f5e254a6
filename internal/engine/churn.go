package engine

import "github.com/finvita/backend/internal/types"

// ChurnRisk classifies disengagement likelihood. Rules are ordered and
// the first match wins; a stale user is high risk no matter how good
// their diagnostic looks.
func ChurnRisk(s SignalSnapshot) string {
	if s.LastActivityDays > 30 {
		return types.ChurnRiskHigh
	}
	if s.DiagnosticScore < 50 && !s.HasScheduledConsultation && s.DaysSinceSignup > 14 {
		return types.ChurnRiskHigh
	}
	if s.ContentEngagement == 0 && s.DaysSinceSignup > 7 {
		return types.ChurnRiskMedium
	}
	return types.ChurnRiskLow
}
