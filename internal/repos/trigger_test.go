package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/finvita/backend/internal/repos/testutil"
	"github.com/finvita/backend/internal/types"
)

func TestTriggerRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewTriggerRepo(db, testutil.Logger(t))
	ctx := context.Background()

	active := &types.AutomationTrigger{
		ID:              uuid.New(),
		Name:            "resgate score baixo",
		ConditionType:   types.ConditionLowScore,
		ConditionConfig: datatypes.JSON([]byte(`{"threshold": 30}`)),
		ActionType:      types.ActionNotification,
		ActionConfig:    datatypes.JSON([]byte(`{"title": "Vamos lá", "message": "Seu diagnóstico precisa de atenção."}`)),
		IsActive:        true,
	}
	inactive := &types.AutomationTrigger{
		ID:            uuid.New(),
		Name:          "campanha antiga",
		ConditionType: types.ConditionInactiveUser,
		ActionType:    types.ActionTag,
		ActionConfig:  datatypes.JSON([]byte(`{"tag": "inativo"}`)),
		IsActive:      false,
	}
	if _, err := repo.Create(ctx, tx, []*types.AutomationTrigger{active, inactive}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := repo.ListActive(ctx, tx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, trigger := range listed {
		if trigger.ID == inactive.ID {
			t.Fatalf("ListActive: deactivated trigger should not be listed")
		}
	}
	found := false
	for _, trigger := range listed {
		if trigger.ID == active.ID {
			found = true
			if trigger.LastExecutedAt != nil {
				t.Fatalf("ListActive: fresh trigger should have no execution stamp")
			}
		}
	}
	if !found {
		t.Fatalf("ListActive: expected the active trigger")
	}

	at := time.Now()
	if err := repo.StampExecuted(ctx, tx, active.ID, at); err != nil {
		t.Fatalf("StampExecuted: %v", err)
	}

	listed, err = repo.ListActive(ctx, tx)
	if err != nil {
		t.Fatalf("ListActive (after stamp): %v", err)
	}
	for _, trigger := range listed {
		if trigger.ID == active.ID && trigger.LastExecutedAt == nil {
			t.Fatalf("StampExecuted: expected last_executed_at to be set")
		}
	}
}
