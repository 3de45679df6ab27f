package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// Generate produces a new practice article and optionally saves it.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	identity, err := models.ParseIdentity(cmd.String("user"))
	if err != nil {
		return err
	}

	level := cmd.String("level")
	if !slices.Contains(models.Levels(identity), level) {
		return fmt.Errorf("%w: level %q is not offered to %s (choose from %v)",
			shared.ErrInvalidInput, level, identity, models.Levels(identity))
	}

	client, err := r.newGenerator()
	if err != nil {
		return err
	}

	r.logger.Info("generating article", "identity", identity, "topic", cmd.String("topic"), "level", level)

	input, err := client.Generate(ctx, identity, cmd.String("topic"), level)
	if err != nil {
		return err
	}

	if cmd.Bool("save") {
		db, err := r.openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := r.newManager(db).SaveArticle(ctx, identity, *input); err != nil {
			return err
		}
		r.logger.Info("article saved", "topic", input.Topic)
	}

	return r.writeJSON(input, cmd.Bool("pretty"))
}
