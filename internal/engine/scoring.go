package engine

// ScoreCriteria is the per-component breakdown of a lead score,
// returned verbatim by the lead-score endpoint.
type ScoreCriteria struct {
	DiagnosticCompleted   int `json:"diagnostic_completed"`
	LowDiagnosticScore    int `json:"low_diagnostic_score"`
	ConsultationScheduled int `json:"consultation_scheduled"`
	ContentEngagement     int `json:"content_engagement"`
	AgingPenalty          int `json:"aging_penalty"`
	InactivityPenalty     int `json:"inactivity_penalty"`
}

// LeadScore folds a snapshot into a 0-100 composite score plus its
// breakdown. A low diagnostic score *adds* points: it signals urgency,
// not disqualification.
func LeadScore(s SignalSnapshot) (int, ScoreCriteria) {
	var c ScoreCriteria
	if s.HasCompletedDiagnostic {
		c.DiagnosticCompleted = 30
	}
	if s.DiagnosticScore < 60 {
		c.LowDiagnosticScore = 25
	}
	if s.HasScheduledConsultation {
		c.ConsultationScheduled = 20
	}
	c.ContentEngagement = s.ContentEngagement * 2
	if c.ContentEngagement > 10 {
		c.ContentEngagement = 10
	}
	c.AgingPenalty = -5 * (s.DaysSinceSignup / 30)
	if s.LastActivityDays > 30 {
		c.InactivityPenalty = -10
	}

	score := c.DiagnosticCompleted + c.LowDiagnosticScore + c.ConsultationScheduled +
		c.ContentEngagement + c.AgingPenalty + c.InactivityPenalty
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, c
}

// Classify maps a lead score onto the hot/warm/cold buckets.
func Classify(score int) string {
	switch {
	case score >= 80:
		return "hot"
	case score >= 50:
		return "warm"
	default:
		return "cold"
	}
}
