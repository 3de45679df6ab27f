package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/tasks"
)

// Migrate replays legacy article files into the database, per user or for
// every user slot.
func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	engine := r.newEngine(r.newManager(db))

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("[%s] %s\n", update.Phase, update.Message)
		}
	}()

	var results []*tasks.MigrationResult
	var runErr error
	if user := cmd.String("user"); user != "" {
		identity, err := models.ParseIdentity(user)
		if err != nil {
			close(progress)
			<-done
			return err
		}
		var result *tasks.MigrationResult
		result, runErr = engine.Run(ctx, progress, identity)
		results = append(results, result)
	} else {
		results, runErr = engine.RunAll(ctx, progress)
	}
	close(progress)
	<-done

	for _, result := range results {
		switch {
		case result == nil:
		case result.Skipped:
			r.writePlain("%s: no legacy data\n", result.Identity)
		case result.Cleared:
			r.writePlain("✓ %s: migrated %d articles\n", result.Identity, result.Migrated)
		default:
			r.writePlain("✗ %s: migrated %d of %d before failing; legacy files kept for retry\n",
				result.Identity, result.Migrated, result.Total)
		}
	}

	return runErr
}
