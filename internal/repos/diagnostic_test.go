package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/repos/testutil"
	"github.com/finvita/backend/internal/types"
)

func TestDiagnosticRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewDiagnosticRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := repo.Create(ctx, tx, []*types.Diagnostic{
		{ID: uuid.New(), UserID: userID, TotalScore: 40, Completed: true, CreatedAt: now.AddDate(0, 0, -30)},
		{ID: uuid.New(), UserID: userID, TotalScore: 65, Completed: true, CreatedAt: now.AddDate(0, 0, -10)},
		{ID: uuid.New(), UserID: userID, TotalScore: 0, Completed: false, CreatedAt: now.AddDate(0, 0, -3)},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := repo.LatestCompletedByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("LatestCompletedByUser: %v", err)
	}
	if latest == nil || latest.TotalScore != 65 {
		t.Fatalf("LatestCompletedByUser: expected score 65, got %+v", latest)
	}

	two, err := repo.TwoLatestCompletedByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("TwoLatestCompletedByUser: %v", err)
	}
	if len(two) != 2 || two[0].TotalScore != 65 || two[1].TotalScore != 40 {
		t.Fatalf("TwoLatestCompletedByUser: expected [65 40], got %+v", two)
	}

	incomplete, err := repo.LatestIncompleteByUser(ctx, tx, userID)
	if err != nil {
		t.Fatalf("LatestIncompleteByUser: %v", err)
	}
	if incomplete == nil || incomplete.Completed {
		t.Fatalf("LatestIncompleteByUser: expected the incomplete row, got %+v", incomplete)
	}

	count, err := repo.CountCompletedSince(ctx, tx, userID, now.AddDate(0, 0, -15))
	if err != nil {
		t.Fatalf("CountCompletedSince: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountCompletedSince (15 days): expected 1, got %d", count)
	}

	count, err = repo.CountCompletedSince(ctx, tx, userID, time.Time{})
	if err != nil {
		t.Fatalf("CountCompletedSince (all time): %v", err)
	}
	if count != 2 {
		t.Fatalf("CountCompletedSince (all time): expected 2, got %d", count)
	}

	// A user with no rows at all.
	latest, err = repo.LatestCompletedByUser(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("LatestCompletedByUser (unknown user): %v", err)
	}
	if latest != nil {
		t.Fatalf("LatestCompletedByUser (unknown user): expected nil")
	}
}
