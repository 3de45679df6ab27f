// package formatter provides functions to export saved articles to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dokusho-app/dokusho/internal/models"
)

// ExportToMarkdown converts a saved article to Markdown with a vocabulary table.
func ExportToMarkdown(article *models.SavedArticle) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", article.Topic()))
	buf.WriteString(fmt.Sprintf("**Level**: %s\n", article.Level()))
	buf.WriteString(fmt.Sprintf("**Saved**: %s\n\n", article.CreatedAt().Format("2006-01-02")))

	buf.WriteString(article.Content())
	buf.WriteString("\n")

	if vocab := article.Vocabulary(); len(vocab) > 0 {
		buf.WriteString("\n## Vocabulary\n\n")
		buf.WriteString("| Word | Reading | Meaning |\n")
		buf.WriteString("| --- | --- | --- |\n")
		for _, entry := range vocab {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s |\n", entry.Word, entry.Reading, entry.Meaning))
		}
	}

	return buf.Bytes()
}

// ExportToText converts a saved article to plain text.
func ExportToText(article *models.SavedArticle) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Topic: %s\n", article.Topic()))
	buf.WriteString(fmt.Sprintf("Level: %s\n\n", article.Level()))
	buf.WriteString(article.Content())
	buf.WriteString("\n")

	for i, entry := range article.Vocabulary() {
		if i == 0 {
			buf.WriteString("\nVocabulary:\n")
		}
		if entry.Reading != "" {
			buf.WriteString(fmt.Sprintf("%d. %s (%s) - %s\n", i+1, entry.Word, entry.Reading, entry.Meaning))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, entry.Word, entry.Meaning))
		}
	}

	return buf.Bytes()
}

// ExportToCSV flattens the vocabulary of one or more articles into CSV with
// columns: ArticleID, Topic, Level, Word, Reading, Meaning.
func ExportToCSV(articles []*models.SavedArticle) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ArticleID", "Topic", "Level", "Word", "Reading", "Meaning"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, article := range articles {
		for _, entry := range article.Vocabulary() {
			record := []string{
				article.ID(),
				article.Topic(),
				article.Level(),
				entry.Word,
				entry.Reading,
				entry.Meaning,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportResult contains the paths of files created by WriteExport.
type ExportResult struct {
	Directory string
	Files     []string
}

// WriteExport writes each article to outputDir in the given format
// ("markdown", "text", or "csv"). Markdown and text produce one file per
// article named after its topic; CSV produces a single vocabulary.csv.
func WriteExport(articles []*models.SavedArticle, outputDir, format string) (*ExportResult, error) {
	if outputDir == "" {
		outputDir = "export"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &ExportResult{Directory: outputDir, Files: []string{}}

	switch format {
	case "csv":
		data, err := ExportToCSV(articles)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, "vocabulary.csv")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write CSV file: %w", err)
		}
		result.Files = append(result.Files, path)

	case "markdown", "text":
		ext := ".md"
		render := ExportToMarkdown
		if format == "text" {
			ext = ".txt"
			render = ExportToText
		}
		for _, article := range articles {
			path := filepath.Join(outputDir, slugify(article.Topic())+"_"+shortID(article.ID())+ext)
			if err := os.WriteFile(path, render(article), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", path, err)
			}
			result.Files = append(result.Files, path)
		}

	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	return result, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// slugify reduces a topic to a safe filename fragment.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		default:
			// Keep non-ASCII (Japanese topics) as-is.
			if r > 127 {
				b.WriteRune(r)
			}
		}
	}
	if b.Len() == 0 {
		return "article"
	}
	return b.String()
}
