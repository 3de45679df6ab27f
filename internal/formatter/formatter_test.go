package formatter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dokusho-app/dokusho/internal/models"
	mocks "github.com/dokusho-app/dokusho/internal/testing"
)

func testArticle(t *testing.T, topic string) *models.SavedArticle {
	t.Helper()

	article := models.NewSavedArticle(1, "profile-1", models.ArticleInput{
		Topic:   topic,
		Level:   "N4",
		Article: "これはテストの文章です。",
		Vocabulary: []models.VocabularyEntry{
			{Word: "文章", Meaning: "texto", Reading: "ぶんしょう"},
			{Word: "viaje", Meaning: "旅行"},
		},
	})
	article.SetID("0123456789abcdef")
	return article
}

func TestExportToMarkdown(t *testing.T) {
	out := string(ExportToMarkdown(testArticle(t, "旅行")))

	if !strings.HasPrefix(out, "# 旅行\n") {
		t.Errorf("expected topic heading, got %q", out[:20])
	}
	if !strings.Contains(out, "**Level**: N4") {
		t.Error("missing level line")
	}
	if !strings.Contains(out, "| 文章 | ぶんしょう | texto |") {
		t.Error("missing vocabulary table row")
	}
}

func TestExportToText(t *testing.T) {
	out := string(ExportToText(testArticle(t, "旅行")))

	if !strings.Contains(out, "Topic: 旅行") {
		t.Error("missing topic line")
	}
	if !strings.Contains(out, "1. 文章 (ぶんしょう) - texto") {
		t.Error("missing annotated vocabulary line")
	}
	if !strings.Contains(out, "2. viaje - 旅行") {
		t.Error("reading-less entry should omit parentheses")
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV([]*models.SavedArticle{testArticle(t, "旅行")})
	if err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ArticleID,Topic,Level,Word") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "文章") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestWriteExport(t *testing.T) {
	articles := []*models.SavedArticle{testArticle(t, "旅行")}

	t.Run("Markdown", func(t *testing.T) {
		dir := t.TempDir()
		result, err := WriteExport(articles, dir, "markdown")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if len(result.Files) != 1 {
			t.Fatalf("expected 1 file, got %d", len(result.Files))
		}
		mocks.AssertFileExists(t, result.Files[0])
		if filepath.Ext(result.Files[0]) != ".md" {
			t.Errorf("expected .md file, got %s", result.Files[0])
		}
		content := mocks.MustReadFile(t, result.Files[0])
		if !strings.Contains(content, "# 旅行") {
			t.Errorf("exported file missing article heading: %q", content)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		dir := t.TempDir()
		result, err := WriteExport(articles, dir, "csv")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		mocks.AssertFileExists(t, filepath.Join(dir, "vocabulary.csv"))
		if len(result.Files) != 1 {
			t.Errorf("expected 1 file, got %d", len(result.Files))
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		if _, err := WriteExport(articles, t.TempDir(), "pdf"); err == nil {
			t.Fatal("expected error for unsupported format")
		}
	})
}
