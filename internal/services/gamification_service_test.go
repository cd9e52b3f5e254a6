package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/types"
)

func TestAddPointsPromotesWithCarry(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	userID := uuid.New()

	row, err := d.gamification.AddPoints(ctx, nil, userID, 480)
	if err != nil {
		t.Fatalf("AddPoints(480): %v", err)
	}
	if row.CurrentLevel != types.LevelBronze || row.LevelPoints != 480 {
		t.Fatalf("after 480: level=%q level_points=%d", row.CurrentLevel, row.LevelPoints)
	}

	row, err = d.gamification.AddPoints(ctx, nil, userID, 50)
	if err != nil {
		t.Fatalf("AddPoints(50): %v", err)
	}
	if row.CurrentLevel != types.LevelSilver {
		t.Fatalf("after 530: expected silver, got %q", row.CurrentLevel)
	}
	if row.LevelPoints != 30 {
		t.Fatalf("after 530: expected 30 carried points, got %d", row.LevelPoints)
	}
	if row.TotalPoints != 530 {
		t.Fatalf("after 530: expected total 530, got %d", row.TotalPoints)
	}
}

func TestTickStreakIdempotentWithinDay(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	userID := uuid.New()

	row, err := d.gamification.TickStreak(ctx, userID)
	if err != nil {
		t.Fatalf("TickStreak: %v", err)
	}
	if row.StreakDays != 1 {
		t.Fatalf("first tick: expected streak 1, got %d", row.StreakDays)
	}

	row, err = d.gamification.TickStreak(ctx, userID)
	if err != nil {
		t.Fatalf("TickStreak (same day): %v", err)
	}
	if row.StreakDays != 1 {
		t.Fatalf("same-day tick must not advance: got %d", row.StreakDays)
	}

	events, err := d.journeyRepo.LatestByUser(ctx, nil, userID)
	if err != nil {
		t.Fatalf("fetching journey events: %v", err)
	}
	if events == nil || events.EventType != types.JourneyEventStreakTick {
		t.Fatalf("expected a streak_tick journey event, got %+v", events)
	}
}

func TestTickStreakAdvancesAndResets(t *testing.T) {
	d := newTestDeps(t)
	ctx := context.Background()
	userID := uuid.New()

	// A five-day streak last ticked yesterday extends to six today.
	row, err := d.gamificationRepo.GetOrCreateForUpdate(ctx, nil, userID)
	if err != nil {
		t.Fatalf("seeding gamification: %v", err)
	}
	yesterday := time.Now().AddDate(0, 0, -1)
	row.StreakDays = 5
	row.LastStreakAt = &yesterday
	if err := d.gamificationRepo.Save(ctx, nil, row); err != nil {
		t.Fatalf("saving seed row: %v", err)
	}

	row, err = d.gamification.TickStreak(ctx, userID)
	if err != nil {
		t.Fatalf("TickStreak (consecutive day): %v", err)
	}
	if row.StreakDays != 6 {
		t.Fatalf("consecutive-day tick: expected streak 6, got %d", row.StreakDays)
	}

	// A multi-day gap starts the count over at one.
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	row.StreakDays = 12
	row.LastStreakAt = &threeDaysAgo
	if err := d.gamificationRepo.Save(ctx, nil, row); err != nil {
		t.Fatalf("saving gapped row: %v", err)
	}

	row, err = d.gamification.TickStreak(ctx, userID)
	if err != nil {
		t.Fatalf("TickStreak (after gap): %v", err)
	}
	if row.StreakDays != 1 {
		t.Fatalf("gapped tick: expected streak reset to 1, got %d", row.StreakDays)
	}
}
