package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/formatter"
	"github.com/dokusho-app/dokusho/internal/models"
)

// ListArticles prints a user's saved articles as JSON, newest first.
func (r *Runner) ListArticles(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	articles, err := r.newManager(db).ListArticles(ctx, identity)
	if err != nil {
		return err
	}

	type row struct {
		ID        string `json:"id"`
		Topic     string `json:"topic"`
		Level     string `json:"level"`
		Words     int    `json:"words"`
		CreatedAt string `json:"createdAt"`
	}
	rows := make([]row, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, row{
			ID:        article.ID(),
			Topic:     article.Topic(),
			Level:     article.Level(),
			Words:     len(article.Vocabulary()),
			CreatedAt: article.CreatedAt().Format("2006-01-02 15:04"),
		})
	}

	return r.writeJSON(rows, cmd.Bool("pretty"))
}

// DeleteArticle removes one of the user's saved articles.
func (r *Runner) DeleteArticle(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := r.newManager(db).DeleteArticle(ctx, identity, cmd.String("id")); err != nil {
		return err
	}

	return r.writePlain("✓ Article deleted\n")
}

// ExportArticles writes a user's saved articles to files in the chosen format.
func (r *Runner) ExportArticles(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	articles, err := r.newManager(db).ListArticles(ctx, identity)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return r.writePlain("No saved articles to export\n")
	}

	result, err := formatter.WriteExport(articles, cmd.String("output"), cmd.String("format"))
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d articles to %s\n", len(articles), result.Directory)
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}
	return nil
}

// Stats prints a user's reading statistics.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := r.newManager(db).GetStats(ctx, identity)
	if err != nil {
		return err
	}

	return r.writeJSON(stats, cmd.Bool("pretty"))
}

// GetLanguage prints the user's interface language.
func (r *Runner) GetLanguage(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	settings, err := r.newManager(db).GetSettings(ctx, identity)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", settings.InterfaceLanguage)
}

// SetLanguage updates the user's interface language.
func (r *Runner) SetLanguage(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}
	language, err := models.ParseLanguage(cmd.String("language"))
	if err != nil {
		return err
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := r.newManager(db).UpdateInterfaceLanguage(ctx, identity, language); err != nil {
		return err
	}

	return r.writePlain("✓ Interface language set to %s\n", language)
}
