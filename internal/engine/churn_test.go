package engine

import (
	"testing"

	"github.com/finvita/backend/internal/types"
)

func TestChurnRiskPrecedence(t *testing.T) {
	// Inactivity wins even with a great diagnostic.
	s := SignalSnapshot{
		LastActivityDays:       35,
		DiagnosticScore:        90,
		HasCompletedDiagnostic: true,
		ContentEngagement:      10,
	}
	if got := ChurnRisk(s); got != types.ChurnRiskHigh {
		t.Fatalf("expected high, got %s", got)
	}
}

func TestChurnRiskRules(t *testing.T) {
	cases := []struct {
		name string
		s    SignalSnapshot
		want string
	}{
		{
			name: "low score, no consultation, past grace period",
			s:    SignalSnapshot{DiagnosticScore: 40, DaysSinceSignup: 20, ContentEngagement: 3},
			want: types.ChurnRiskHigh,
		},
		{
			name: "low score but consultation scheduled",
			s:    SignalSnapshot{DiagnosticScore: 40, DaysSinceSignup: 20, HasScheduledConsultation: true, ContentEngagement: 3},
			want: types.ChurnRiskLow,
		},
		{
			name: "no engagement after first week",
			s:    SignalSnapshot{DiagnosticScore: 70, DaysSinceSignup: 10},
			want: types.ChurnRiskMedium,
		},
		{
			name: "fresh signup",
			s:    SignalSnapshot{DiagnosticScore: 45},
			want: types.ChurnRiskLow,
		},
	}
	for _, tc := range cases {
		if got := ChurnRisk(tc.s); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
