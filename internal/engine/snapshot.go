package engine

// SignalSnapshot is the per-user input to the lead scorer and churn
// assessor. It is derived, never persisted, and must be built from
// queries that observe the same logical instant so the two functions
// never disagree about the underlying signals.
type SignalSnapshot struct {
	HasCompletedDiagnostic   bool `json:"has_completed_diagnostic"`
	DiagnosticScore          int  `json:"diagnostic_score"`
	HasScheduledConsultation bool `json:"has_scheduled_consultation"`
	ContentEngagement        int  `json:"content_engagement"`
	DaysSinceSignup          int  `json:"days_since_signup"`
	LastActivityDays         int  `json:"last_activity_days"`
}
