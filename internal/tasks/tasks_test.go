package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
	"github.com/dokusho-app/dokusho/internal/store"
	mocks "github.com/dokusho-app/dokusho/internal/testing"
)

func legacyInput(topic string) models.ArticleInput {
	return models.ArticleInput{
		Topic:   topic,
		Level:   "B1",
		Article: "contenido",
	}
}

func seededLocal(t *testing.T, identity models.Identity, topics ...string) *store.Local {
	t.Helper()

	local := store.NewLocal(t.TempDir(), nil)
	for _, topic := range topics {
		if err := local.SaveArticle(context.Background(), identity, legacyInput(topic)); err != nil {
			t.Fatalf("failed to seed legacy article: %v", err)
		}
	}
	return local
}

func TestMigrationEngineRun(t *testing.T) {
	ctx := context.Background()

	t.Run("MigratesOldestFirstAndClears", func(t *testing.T) {
		local := seededLocal(t, models.IdentityUser1, "primero", "segundo", "tercero")
		target := &mocks.MockManager{}
		engine := NewMigrationEngine(local, target, nil)

		result, err := engine.Run(ctx, nil, models.IdentityUser1)
		if err != nil {
			t.Fatalf("migration failed: %v", err)
		}
		if result.Migrated != 3 || result.Total != 3 {
			t.Errorf("unexpected result: %+v", result)
		}
		if !result.Cleared {
			t.Error("expected legacy data cleared after full success")
		}
		if local.HasLegacyData(models.IdentityUser1) {
			t.Error("legacy files should be gone")
		}

		if len(target.SavedInputs) != 3 || target.SavedInputs[0].Topic != "primero" {
			t.Errorf("expected oldest-first replay, got %+v", target.SavedInputs)
		}
	})

	t.Run("NoLegacyDataIsSkipped", func(t *testing.T) {
		local := store.NewLocal(t.TempDir(), nil)
		engine := NewMigrationEngine(local, &mocks.MockManager{}, nil)

		result, err := engine.Run(ctx, nil, models.IdentityUser1)
		if err != nil {
			t.Fatalf("expected benign no-op, got %v", err)
		}
		if !result.Skipped {
			t.Error("expected Skipped for identity without legacy data")
		}
	})

	t.Run("PartialFailureKeepsLegacyData", func(t *testing.T) {
		local := seededLocal(t, models.IdentityUser1, "primero", "segundo", "tercero")

		calls := 0
		target := &mocks.MockManager{
			SaveArticleFn: func(ctx context.Context, identity models.Identity, input models.ArticleInput) error {
				calls++
				if calls == 3 {
					return fmt.Errorf("disk full")
				}
				return nil
			},
		}
		engine := NewMigrationEngine(local, target, nil)

		result, err := engine.Run(ctx, nil, models.IdentityUser1)
		if !errors.Is(err, shared.ErrMigrationFailed) {
			t.Fatalf("expected ErrMigrationFailed, got %v", err)
		}
		if result.Migrated != 2 {
			t.Errorf("expected 2 migrated before failure, got %d", result.Migrated)
		}
		if result.Cleared {
			t.Error("legacy data must not be cleared after a failure")
		}
		if !local.HasLegacyData(models.IdentityUser1) {
			t.Fatal("legacy files must survive a failed run")
		}

		// A retry after the fault clears replays everything; the two
		// articles that made it across the first time are duplicated.
		// At-least-once means nothing is lost, not that nothing repeats.
		retryTarget := &mocks.MockManager{}
		retry := NewMigrationEngine(local, retryTarget, nil)
		if _, err := retry.Run(ctx, nil, models.IdentityUser1); err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if len(retryTarget.SavedInputs) != 3 {
			t.Errorf("expected full replay on retry, got %d", len(retryTarget.SavedInputs))
		}
	})

	t.Run("CancelledContextStopsReplay", func(t *testing.T) {
		local := seededLocal(t, models.IdentityUser1, "primero", "segundo")
		engine := NewMigrationEngine(local, &mocks.MockManager{}, nil)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := engine.Run(cancelled, nil, models.IdentityUser1)
		if !errors.Is(err, shared.ErrMigrationFailed) {
			t.Fatalf("expected ErrMigrationFailed on cancellation, got %v", err)
		}
		if !local.HasLegacyData(models.IdentityUser1) {
			t.Error("legacy data must survive a cancelled run")
		}
	})

	t.Run("EmitsProgressUpdates", func(t *testing.T) {
		local := seededLocal(t, models.IdentityUser1, "primero", "segundo")
		engine := NewMigrationEngine(local, &mocks.MockManager{}, nil)

		progress := make(chan ProgressUpdate, 16)
		if _, err := engine.Run(ctx, progress, models.IdentityUser1); err != nil {
			t.Fatalf("migration failed: %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		if len(phases) < 3 {
			t.Fatalf("expected detect, save, and done updates, got %v", phases)
		}
		if phases[0] != PhaseDetect {
			t.Errorf("expected detect phase first, got %v", phases[0])
		}
		if phases[len(phases)-1] != PhaseDone {
			t.Errorf("expected done phase last, got %v", phases[len(phases)-1])
		}
	})
}

func TestMigrationEngineRunAll(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	local := store.NewLocal(dir, nil)
	if err := local.SaveArticle(ctx, models.IdentityUser1, legacyInput("viajes")); err != nil {
		t.Fatalf("failed to seed legacy article: %v", err)
	}

	target := &mocks.MockManager{}
	engine := NewMigrationEngine(local, target, nil)

	results, err := engine.RunAll(ctx, nil)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if len(results) != len(models.Identities()) {
		t.Fatalf("expected one result per identity, got %d", len(results))
	}
	if results[0].Migrated != 1 {
		t.Errorf("expected user1 migration, got %+v", results[0])
	}
	if !results[1].Skipped {
		t.Errorf("expected user2 skipped, got %+v", results[1])
	}
}
