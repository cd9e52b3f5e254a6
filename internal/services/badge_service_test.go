package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/finvita/backend/internal/pkg/errors"
	"github.com/finvita/backend/internal/types"
)

func TestTryAwardFirstStep(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	profiles, err := d.profileRepo.Create(ctx, nil, []*types.Profile{
		{ID: uuid.New(), Email: "badge-award@example.com"},
	})
	if err != nil {
		t.Fatalf("creating profile: %v", err)
	}
	userID := profiles[0].ID

	if _, err := d.diagnosticRepo.Create(ctx, nil, []*types.Diagnostic{
		{ID: uuid.New(), UserID: userID, TotalScore: 70, Completed: true},
	}); err != nil {
		t.Fatalf("creating diagnostic: %v", err)
	}

	result, err := d.badges.TryAward(ctx, userID, types.BadgeFirstStep)
	if err != nil {
		t.Fatalf("TryAward: %v", err)
	}
	if !result.Awarded {
		t.Fatalf("TryAward: expected award, got reason %q", result.Reason)
	}
	if result.PointsEarned != types.BadgePoints {
		t.Fatalf("TryAward: expected %d points, got %d", types.BadgePoints, result.PointsEarned)
	}

	row, err := d.gamificationRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("fetching gamification: %v", err)
	}
	if row == nil || row.TotalPoints != types.BadgePoints {
		t.Fatalf("expected %d total points, got %+v", types.BadgePoints, row)
	}

	notifications, err := d.notificationRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("listing notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 award notification, got %d", len(notifications))
	}

	// Second attempt: same badge never awards twice, and no extra points.
	result, err = d.badges.TryAward(ctx, userID, types.BadgeFirstStep)
	if err != nil {
		t.Fatalf("TryAward (repeat): %v", err)
	}
	if result.Awarded || result.Reason != ReasonAlreadyAwarded {
		t.Fatalf("TryAward (repeat): expected already_awarded, got %+v", result)
	}
	row, err = d.gamificationRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("fetching gamification (repeat): %v", err)
	}
	if row.TotalPoints != types.BadgePoints {
		t.Fatalf("points must not double: got %d", row.TotalPoints)
	}
}

func TestTryAwardNotEligible(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	profiles, err := d.profileRepo.Create(ctx, nil, []*types.Profile{
		{ID: uuid.New(), Email: "badge-ineligible@example.com"},
	})
	if err != nil {
		t.Fatalf("creating profile: %v", err)
	}

	result, err := d.badges.TryAward(ctx, profiles[0].ID, types.BadgeEducated)
	if err != nil {
		t.Fatalf("TryAward: %v", err)
	}
	if result.Awarded || result.Reason != ReasonNotEligible {
		t.Fatalf("expected not_eligible, got %+v", result)
	}
}

func TestTryAwardEvolving(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()

	profiles, err := d.profileRepo.Create(ctx, nil, []*types.Profile{
		{ID: uuid.New(), Email: "badge-improved@example.com"},
		{ID: uuid.New(), Email: "badge-stagnant@example.com"},
	})
	if err != nil {
		t.Fatalf("creating profiles: %v", err)
	}
	improved := profiles[0].ID
	stagnant := profiles[1].ID

	// The predicate compares the two oldest history rows: 40 → 65 clears
	// the 20-point bar, 40 → 50 does not.
	if _, err := d.historyRepo.Create(ctx, nil, []*types.DiagnosticHistory{
		{ID: uuid.New(), UserID: improved, TotalScore: 40, CreatedAt: time.Now().AddDate(0, -2, 0)},
		{ID: uuid.New(), UserID: improved, TotalScore: 65, CreatedAt: time.Now().AddDate(0, 0, -10)},
		{ID: uuid.New(), UserID: stagnant, TotalScore: 40, CreatedAt: time.Now().AddDate(0, -2, 0)},
		{ID: uuid.New(), UserID: stagnant, TotalScore: 50, CreatedAt: time.Now().AddDate(0, 0, -10)},
	}); err != nil {
		t.Fatalf("creating history: %v", err)
	}

	result, err := d.badges.TryAward(ctx, improved, types.BadgeEvolving)
	if err != nil {
		t.Fatalf("TryAward (improved): %v", err)
	}
	if !result.Awarded {
		t.Fatalf("expected award for a 25-point improvement, got reason %q", result.Reason)
	}

	result, err = d.badges.TryAward(ctx, stagnant, types.BadgeEvolving)
	if err != nil {
		t.Fatalf("TryAward (stagnant): %v", err)
	}
	if result.Awarded || result.Reason != ReasonNotEligible {
		t.Fatalf("expected not_eligible for a 10-point improvement, got %+v", result)
	}
}

func TestTryAwardUnknownBadgeType(t *testing.T) {
	d := newTestDeps(t)

	_, err := d.badges.TryAward(context.Background(), uuid.New(), "time_traveler")
	if !errors.Is(err, apperrors.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}
