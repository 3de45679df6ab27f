package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testBackend(t *testing.T) (*Backend, *sql.DB) {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })
	return NewBackend(BackendOpts{DB: db}), db
}

func testInput(topic, level string) models.ArticleInput {
	return models.ArticleInput{
		Topic:   topic,
		Level:   level,
		Article: "contenido de prueba",
		Vocabulary: []models.VocabularyEntry{
			{Word: "palabra", Meaning: "単語"},
		},
	}
}

func TestBackendEnsureProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesDefaultOnFirstAccess", func(t *testing.T) {
		backend, _ := testBackend(t)

		profile, err := backend.EnsureProfile(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("failed to ensure profile: %v", err)
		}
		if profile.Name() != "NAMICHI" {
			t.Errorf("expected NAMICHI, got %s", profile.Name())
		}
		if profile.Language() != models.LanguageSpanish {
			t.Errorf("expected spanish default, got %s", profile.Language())
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		backend, _ := testBackend(t)

		first, err := backend.EnsureProfile(ctx, models.IdentityUser2)
		if err != nil {
			t.Fatalf("failed to ensure profile: %v", err)
		}
		second, err := backend.EnsureProfile(ctx, models.IdentityUser2)
		if err != nil {
			t.Fatalf("failed to ensure profile again: %v", err)
		}
		if first.ID() != second.ID() {
			t.Errorf("expected same profile, got %s and %s", first.ID(), second.ID())
		}
	})

	t.Run("RejectsUnknownIdentity", func(t *testing.T) {
		backend, _ := testBackend(t)

		_, err := backend.EnsureProfile(ctx, models.Identity("user3"))
		if !errors.Is(err, shared.ErrInvalidIdentity) {
			t.Fatalf("expected ErrInvalidIdentity, got %v", err)
		}
	})
}

func TestBackendSaveArticle(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveThenList", func(t *testing.T) {
		backend, _ := testBackend(t)

		if err := backend.SaveArticle(ctx, models.IdentityUser1, testInput("viajes", "B1")); err != nil {
			t.Fatalf("failed to save article: %v", err)
		}
		if err := backend.SaveArticle(ctx, models.IdentityUser1, testInput("cocina", "A2")); err != nil {
			t.Fatalf("failed to save article: %v", err)
		}

		articles, err := backend.ListArticles(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("failed to list articles: %v", err)
		}
		if len(articles) != 2 {
			t.Fatalf("expected 2 articles, got %d", len(articles))
		}
		if articles[0].Topic() != "cocina" {
			t.Errorf("expected newest article first, got %s", articles[0].Topic())
		}
	})

	t.Run("RejectsInvalidInput", func(t *testing.T) {
		backend, _ := testBackend(t)

		err := backend.SaveArticle(ctx, models.IdentityUser1, models.ArticleInput{Topic: "viajes"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("UpdatesStats", func(t *testing.T) {
		backend, _ := testBackend(t)

		for _, topic := range []string{"viajes", "viajes", "cocina"} {
			if err := backend.SaveArticle(ctx, models.IdentityUser1, testInput(topic, "B1")); err != nil {
				t.Fatalf("failed to save article: %v", err)
			}
		}

		stats, err := backend.GetStats(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("failed to get stats: %v", err)
		}
		if stats.TotalArticles != 3 {
			t.Errorf("expected 3 total articles, got %d", stats.TotalArticles)
		}
		if len(stats.FavoriteTopics) != 2 || stats.FavoriteTopics[0] != "viajes" {
			t.Errorf("expected viajes ranked first, got %v", stats.FavoriteTopics)
		}
		if stats.LevelDistribution["B1"] != 3 {
			t.Errorf("expected 3 B1 articles, got %v", stats.LevelDistribution)
		}
	})
}

func TestBackendDeleteArticle(t *testing.T) {
	ctx := context.Background()
	backend, _ := testBackend(t)

	if err := backend.SaveArticle(ctx, models.IdentityUser1, testInput("viajes", "B1")); err != nil {
		t.Fatalf("failed to save article: %v", err)
	}
	articles, _ := backend.ListArticles(ctx, models.IdentityUser1)
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	id := articles[0].ID()

	t.Run("OtherUserCannotDelete", func(t *testing.T) {
		if err := backend.DeleteArticle(ctx, models.IdentityUser2, id); err != nil {
			t.Fatalf("cross-user delete should be a silent no-op, got %v", err)
		}
		remaining, _ := backend.ListArticles(ctx, models.IdentityUser1)
		if len(remaining) != 1 {
			t.Fatal("article should survive cross-user delete")
		}
	})

	t.Run("OwnerDeletes", func(t *testing.T) {
		if err := backend.DeleteArticle(ctx, models.IdentityUser1, id); err != nil {
			t.Fatalf("failed to delete article: %v", err)
		}
		remaining, _ := backend.ListArticles(ctx, models.IdentityUser1)
		if len(remaining) != 0 {
			t.Fatalf("expected no articles, got %d", len(remaining))
		}
	})
}

func TestBackendFailSoftReads(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	backend := NewBackend(BackendOpts{DB: db})
	db.Close() // every query from here on fails

	t.Run("ListArticles", func(t *testing.T) {
		articles, err := backend.ListArticles(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("list should fail soft, got %v", err)
		}
		if len(articles) != 0 {
			t.Errorf("expected empty list, got %d", len(articles))
		}
	})

	t.Run("GetStats", func(t *testing.T) {
		stats, err := backend.GetStats(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("stats should fail soft, got %v", err)
		}
		if stats.TotalArticles != 0 || len(stats.FavoriteTopics) != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})

	t.Run("GetSettings", func(t *testing.T) {
		settings, err := backend.GetSettings(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("settings should fail soft, got %v", err)
		}
		if settings.InterfaceLanguage != models.LanguageSpanish {
			t.Errorf("expected spanish fallback, got %s", settings.InterfaceLanguage)
		}
	})

	t.Run("WritesStillFail", func(t *testing.T) {
		if err := backend.SaveArticle(ctx, models.IdentityUser1, testInput("viajes", "B1")); err == nil {
			t.Fatal("save should fail loud on an unavailable store")
		}
	})
}

func TestBackendSettings(t *testing.T) {
	ctx := context.Background()
	backend, _ := testBackend(t)

	settings, err := backend.GetSettings(ctx, models.IdentityUser2)
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.InterfaceLanguage != models.LanguageSpanish {
		t.Errorf("expected spanish default, got %s", settings.InterfaceLanguage)
	}

	if err := backend.UpdateInterfaceLanguage(ctx, models.IdentityUser2, models.LanguageJapanese); err != nil {
		t.Fatalf("failed to update language: %v", err)
	}

	settings, err = backend.GetSettings(ctx, models.IdentityUser2)
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.InterfaceLanguage != models.LanguageJapanese {
		t.Errorf("expected japanese, got %s", settings.InterfaceLanguage)
	}

	t.Run("RejectsUnknownLanguage", func(t *testing.T) {
		err := backend.UpdateInterfaceLanguage(ctx, models.IdentityUser2, models.InterfaceLanguage("klingon"))
		if !errors.Is(err, shared.ErrInvalidLanguage) {
			t.Fatalf("expected ErrInvalidLanguage, got %v", err)
		}
	})
}
