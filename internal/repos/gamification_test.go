package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/repos/testutil"
	"github.com/finvita/backend/internal/types"
)

func TestGamificationRepoGetOrCreateForUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGamificationRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()

	row, err := repo.GetByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if row != nil {
		t.Fatalf("GetByUser: expected nil for unknown user")
	}

	row, err = repo.GetOrCreateForUpdate(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate: %v", err)
	}
	if row.CurrentLevel != types.LevelBronze || row.TotalPoints != 0 {
		t.Fatalf("seed row: got level=%q points=%d", row.CurrentLevel, row.TotalPoints)
	}

	// A second call finds the same row instead of seeding another.
	again, err := repo.GetOrCreateForUpdate(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetOrCreateForUpdate (again): %v", err)
	}
	if again.ID != row.ID {
		t.Fatalf("expected one row per user, got %s and %s", row.ID, again.ID)
	}

	now := time.Now()
	row.TotalPoints = 530
	row.LevelPoints = 30
	row.CurrentLevel = types.LevelSilver
	row.StreakDays = 3
	row.LastStreakAt = &now
	if err := repo.Save(ctx, tx, row); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetByUser (after save): %v", err)
	}
	if got.TotalPoints != 530 || got.LevelPoints != 30 || got.CurrentLevel != types.LevelSilver || got.StreakDays != 3 {
		t.Fatalf("Save: unexpected row: %+v", got)
	}
	if got.LastStreakAt == nil {
		t.Fatalf("Save: expected last_streak_at to persist")
	}
}
