package store

import (
	"context"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
	tu "github.com/dokusho-app/dokusho/internal/testing"
)

func testLocal(t *testing.T) *Local {
	t.Helper()
	return NewLocal(t.TempDir(), nil)
}

func TestLocalSaveAndList(t *testing.T) {
	ctx := context.Background()
	local := testLocal(t)

	if err := local.SaveArticle(ctx, models.IdentityUser1, testInput("viajes", "B1")); err != nil {
		t.Fatalf("failed to save article: %v", err)
	}
	if err := local.SaveArticle(ctx, models.IdentityUser1, testInput("cocina", "A2")); err != nil {
		t.Fatalf("failed to save article: %v", err)
	}

	articles, err := local.ListArticles(ctx, models.IdentityUser1)
	if err != nil {
		t.Fatalf("failed to list articles: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Topic() != "cocina" {
		t.Errorf("expected newest article first, got %s", articles[0].Topic())
	}

	t.Run("OtherIdentityIsEmpty", func(t *testing.T) {
		articles, err := local.ListArticles(ctx, models.IdentityUser2)
		if err != nil {
			t.Fatalf("failed to list articles: %v", err)
		}
		if len(articles) != 0 {
			t.Errorf("expected no articles for user2, got %d", len(articles))
		}
	})
}

func TestLocalDelete(t *testing.T) {
	ctx := context.Background()
	local := testLocal(t)

	if err := local.SaveArticle(ctx, models.IdentityUser1, testInput("viajes", "B1")); err != nil {
		t.Fatalf("failed to save article: %v", err)
	}
	articles, _ := local.ListArticles(ctx, models.IdentityUser1)
	id := articles[0].ID()

	t.Run("UnknownIDIsNoOp", func(t *testing.T) {
		if err := local.DeleteArticle(ctx, models.IdentityUser1, "missing"); err != nil {
			t.Fatalf("unknown id should be a no-op, got %v", err)
		}
	})

	if err := local.DeleteArticle(ctx, models.IdentityUser1, id); err != nil {
		t.Fatalf("failed to delete article: %v", err)
	}
	remaining, _ := local.ListArticles(ctx, models.IdentityUser1)
	if len(remaining) != 0 {
		t.Fatalf("expected no articles after delete, got %d", len(remaining))
	}
}

func TestLocalStats(t *testing.T) {
	ctx := context.Background()
	local := testLocal(t)

	// viajes saved twice, cocina once: count ranking puts viajes first
	// regardless of recency.
	for _, topic := range []string{"viajes", "cocina", "viajes"} {
		if err := local.SaveArticle(ctx, models.IdentityUser1, testInput(topic, "B1")); err != nil {
			t.Fatalf("failed to save article: %v", err)
		}
	}

	stats, err := local.GetStats(ctx, models.IdentityUser1)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.TotalArticles != 3 {
		t.Errorf("expected 3 total, got %d", stats.TotalArticles)
	}
	if len(stats.FavoriteTopics) != 2 || stats.FavoriteTopics[0] != "viajes" {
		t.Errorf("expected viajes ranked first, got %v", stats.FavoriteTopics)
	}
	if stats.LevelDistribution["B1"] != 3 {
		t.Errorf("unexpected level distribution: %v", stats.LevelDistribution)
	}

	t.Run("EmptyIdentityGetsZeroStats", func(t *testing.T) {
		stats, err := local.GetStats(ctx, models.IdentityUser2)
		if err != nil {
			t.Fatalf("stats should fail soft, got %v", err)
		}
		if stats.TotalArticles != 0 || len(stats.FavoriteTopics) != 0 {
			t.Errorf("expected zero stats, got %+v", stats)
		}
	})
}

func TestLocalSettings(t *testing.T) {
	ctx := context.Background()
	local := testLocal(t)

	settings, err := local.GetSettings(ctx, models.IdentityUser1)
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.InterfaceLanguage != models.LanguageSpanish {
		t.Errorf("expected spanish default, got %s", settings.InterfaceLanguage)
	}

	if err := local.UpdateInterfaceLanguage(ctx, models.IdentityUser1, models.LanguageEnglish); err != nil {
		t.Fatalf("failed to update language: %v", err)
	}

	settings, err = local.GetSettings(ctx, models.IdentityUser1)
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	if settings.InterfaceLanguage != models.LanguageEnglish {
		t.Errorf("expected english, got %s", settings.InterfaceLanguage)
	}

	t.Run("CorruptFileFallsBack", func(t *testing.T) {
		local := testLocal(t)
		tu.MustWriteFile(t, local.settingsPath(models.IdentityUser1), "{not json")

		settings, err := local.GetSettings(ctx, models.IdentityUser1)
		if err != nil {
			t.Fatalf("settings should fail soft, got %v", err)
		}
		if settings.InterfaceLanguage != models.LanguageSpanish {
			t.Errorf("expected spanish fallback, got %s", settings.InterfaceLanguage)
		}
	})
}

func TestLocalLegacySource(t *testing.T) {
	ctx := context.Background()
	local := testLocal(t)

	if local.HasLegacyData(models.IdentityUser1) {
		t.Fatal("fresh directory should have no legacy data")
	}

	for _, topic := range []string{"primero", "segundo"} {
		if err := local.SaveArticle(ctx, models.IdentityUser1, testInput(topic, "B1")); err != nil {
			t.Fatalf("failed to save article: %v", err)
		}
	}

	if !local.HasLegacyData(models.IdentityUser1) {
		t.Fatal("expected legacy data after save")
	}

	inputs, err := local.LegacyArticles(models.IdentityUser1)
	if err != nil {
		t.Fatalf("failed to read legacy articles: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs[0].Topic != "primero" {
		t.Errorf("legacy articles should be oldest first, got %s", inputs[0].Topic)
	}

	if err := local.ClearLegacy(models.IdentityUser1); err != nil {
		t.Fatalf("failed to clear legacy data: %v", err)
	}
	if local.HasLegacyData(models.IdentityUser1) {
		t.Fatal("expected no legacy data after clear")
	}
	tu.AssertFileMissing(t, local.articlesPath(models.IdentityUser1))
	tu.AssertFileMissing(t, local.statsPath(models.IdentityUser1))
	tu.AssertFileMissing(t, local.settingsPath(models.IdentityUser1))

	t.Run("ClearIsIdempotent", func(t *testing.T) {
		if err := local.ClearLegacy(models.IdentityUser1); err != nil {
			t.Fatalf("second clear should succeed, got %v", err)
		}
	})
}
