// package tasks implements the one-shot transfer of legacy local article data
// into the database-backed store.
//
// The core abstraction is MigrationEngine, which drains a legacy source
// through the normal article save path so every replayed article passes
// profile resolution and statistics updates. Operations emit progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
	"github.com/dokusho-app/dokusho/internal/store"
)

// LegacySource is the read side of a migration: a store holding pre-database
// article data.
type LegacySource interface {
	// HasLegacyData reports whether any article data exists for the identity.
	HasLegacyData(identity models.Identity) bool

	// LegacyArticles returns the identity's articles in their stored order
	// (oldest first).
	LegacyArticles(identity models.Identity) ([]models.ArticleInput, error)

	// ClearLegacy removes all legacy data for the identity. Called only
	// after every article has been replayed successfully.
	ClearLegacy(identity models.Identity) error
}

// MigrationResult summarizes one identity's migration run.
type MigrationResult struct {
	Identity models.Identity
	Total    int  // Articles found in the legacy store
	Migrated int  // Articles replayed into the target before any failure
	Skipped  bool // True when no legacy data existed (benign no-op)
	Cleared  bool // True when the legacy store was removed
}

// MigrationEngine replays legacy articles into a target [store.Manager].
//
// The guarantee is at-least-once: a failure partway through leaves the legacy
// store untouched, so a retry after the fault clears re-saves the articles
// that already made it across. Nothing is ever silently dropped, at the cost
// of possible duplicates on retry.
type MigrationEngine struct {
	source LegacySource
	target store.Manager
	logger *log.Logger
}

// NewMigrationEngine creates an engine reading from source and writing to target.
func NewMigrationEngine(source LegacySource, target store.Manager, logger *log.Logger) *MigrationEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MigrationEngine{source: source, target: target, logger: logger}
}

// Run migrates a single identity's legacy data.
//
// When no legacy data exists the run is a no-op with Skipped set, not an
// error. On a mid-sequence save failure the error wraps
// [shared.ErrMigrationFailed] and the legacy store is left in place.
func (e *MigrationEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, identity models.Identity) (*MigrationResult, error) {
	result := &MigrationResult{Identity: identity}

	if !e.source.HasLegacyData(identity) {
		result.Skipped = true
		send(progress, noLegacyDataUpdate(identity))
		return result, nil
	}

	send(progress, detectUpdate(identity))

	articles, err := e.source.LegacyArticles(identity)
	if err != nil {
		return result, fmt.Errorf("%w: reading legacy articles for %s: %v", shared.ErrMigrationFailed, identity, err)
	}
	result.Total = len(articles)

	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: %v", shared.ErrMigrationFailed, err)
		}

		send(progress, saveUpdate(identity, i+1, result.Total, article.Topic))

		if err := e.target.SaveArticle(ctx, identity, article); err != nil {
			return result, fmt.Errorf("%w: article %d of %d (%s): %v", shared.ErrMigrationFailed, i+1, result.Total, article.Topic, err)
		}
		result.Migrated++
	}

	if err := e.source.ClearLegacy(identity); err != nil {
		return result, fmt.Errorf("%w: clearing legacy store for %s: %v", shared.ErrMigrationFailed, identity, err)
	}
	result.Cleared = true

	send(progress, doneUpdate(identity, result.Migrated))
	e.logger.Info("migrated legacy articles", "identity", identity, "count", result.Migrated)

	return result, nil
}

// RunAll migrates every known identity in order, stopping at the first failure.
func (e *MigrationEngine) RunAll(ctx context.Context, progress chan<- ProgressUpdate) ([]*MigrationResult, error) {
	var results []*MigrationResult
	for _, identity := range models.Identities() {
		result, err := e.Run(ctx, progress, identity)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// send delivers an update when a progress channel was provided.
func send(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress != nil {
		progress <- update
	}
}
