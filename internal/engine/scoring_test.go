package engine

import "testing"

func TestLeadScoreComponents(t *testing.T) {
	// Fresh signup with a 45-point diagnostic, nothing else.
	s := SignalSnapshot{
		HasCompletedDiagnostic: true,
		DiagnosticScore:        45,
	}
	score, c := LeadScore(s)
	if score != 55 {
		t.Fatalf("score: expected 55, got %d", score)
	}
	if c.DiagnosticCompleted != 30 || c.LowDiagnosticScore != 25 {
		t.Fatalf("criteria: unexpected breakdown %+v", c)
	}
	if Classify(score) != "warm" {
		t.Fatalf("classification: expected warm, got %s", Classify(score))
	}
}

func TestLeadScoreEngagementCap(t *testing.T) {
	s := SignalSnapshot{DiagnosticScore: 100, ContentEngagement: 50}
	_, c := LeadScore(s)
	if c.ContentEngagement != 10 {
		t.Fatalf("engagement: expected cap at 10, got %d", c.ContentEngagement)
	}
}

func TestLeadScoreAgingPenalty(t *testing.T) {
	s := SignalSnapshot{
		HasCompletedDiagnostic: true,
		DiagnosticScore:        40,
		DaysSinceSignup:        95, // 3 full months
	}
	score, c := LeadScore(s)
	if c.AgingPenalty != -15 {
		t.Fatalf("aging penalty: expected -15, got %d", c.AgingPenalty)
	}
	if score != 40 {
		t.Fatalf("score: expected 40, got %d", score)
	}
}

func TestLeadScoreClamp(t *testing.T) {
	// Everything negative: old, inactive, no signals but a high
	// diagnostic score (no urgency bonus).
	low := SignalSnapshot{DiagnosticScore: 90, DaysSinceSignup: 400, LastActivityDays: 60}
	if score, _ := LeadScore(low); score != 0 {
		t.Fatalf("low clamp: expected 0, got %d", score)
	}

	// Everything positive.
	high := SignalSnapshot{
		HasCompletedDiagnostic:   true,
		DiagnosticScore:          10,
		HasScheduledConsultation: true,
		ContentEngagement:        20,
	}
	score, _ := LeadScore(high)
	if score < 0 || score > 100 {
		t.Fatalf("clamp: score %d out of range", score)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{80, "hot"},
		{79, "warm"},
		{50, "warm"},
		{49, "cold"},
		{0, "cold"},
		{100, "hot"},
	}
	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("Classify(%d): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}
