package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/finvita/backend/internal/repos/testutil"
	"github.com/finvita/backend/internal/types"
)

func TestProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Profile{
		{
			ID:       uuid.New(),
			Email:    "profilerepo@example.com",
			FullName: "Ana Souza",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 profile, got %d", len(created))
	}
	id := created[0].ID

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("GetByIDs: unexpected result: %+v", got)
	}

	if err := repo.UpdateScores(ctx, tx, id, 72, types.ChurnRiskMedium); err != nil {
		t.Fatalf("UpdateScores: %v", err)
	}
	got, err = repo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		t.Fatalf("GetByIDs (after update): %v", err)
	}
	if got[0].LeadScore != 72 || got[0].ChurnRisk != types.ChurnRiskMedium {
		t.Fatalf("UpdateScores: got lead_score=%d churn_risk=%q", got[0].LeadScore, got[0].ChurnRisk)
	}
}

func TestProfileRepoAddTagIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*types.Profile{
		{ID: uuid.New(), Email: "tags@example.com"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := created[0].ID

	added, err := repo.AddTagIfAbsent(ctx, tx, id, "follow-up")
	if err != nil {
		t.Fatalf("AddTagIfAbsent: %v", err)
	}
	if !added {
		t.Fatalf("AddTagIfAbsent: expected tag to be added")
	}

	added, err = repo.AddTagIfAbsent(ctx, tx, id, "follow-up")
	if err != nil {
		t.Fatalf("AddTagIfAbsent (repeat): %v", err)
	}
	if added {
		t.Fatalf("AddTagIfAbsent (repeat): expected no-op")
	}

	added, err = repo.AddTagIfAbsent(ctx, tx, id, "vip")
	if err != nil {
		t.Fatalf("AddTagIfAbsent (second tag): %v", err)
	}
	if !added {
		t.Fatalf("AddTagIfAbsent (second tag): expected tag to be added")
	}

	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	var tags []string
	if err := json.Unmarshal(got[0].Tags, &tags); err != nil {
		t.Fatalf("decoding tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "follow-up" || tags[1] != "vip" {
		t.Fatalf("unexpected tag set: %v", tags)
	}
}
