// Package store implements the user data access layer.
//
// The [Manager] interface is the single contract the UI layers consume. Two
// implementations exist: [Backend], over the SQLite database, and [Local],
// over per-user JSON files predating the database. The migration engine in
// internal/tasks bridges the two, draining a [Local] store into a [Backend].
//
// Failure modes are asymmetric on purpose: write operations surface their
// errors to the caller, while read operations (ListArticles, GetStats,
// GetSettings) suppress them and return safe defaults so browsing stays
// usable when connectivity degrades. Each method documents which mode it
// follows.
package store

import (
	"context"

	"github.com/dokusho-app/dokusho/internal/models"
)

// FavoriteTopicLimit bounds the ranked topic list returned by GetStats.
const FavoriteTopicLimit = 10

// Manager is the data-access contract scoped to user identities.
type Manager interface {
	// EnsureProfile returns the profile for an identity, creating the
	// default profile on first access. Fail-loud.
	EnsureProfile(ctx context.Context, identity models.Identity) (*models.UserProfile, error)

	// SaveArticle persists a generated article for an identity and updates
	// the identity's statistics. Fail-loud.
	SaveArticle(ctx context.Context, identity models.Identity, input models.ArticleInput) error

	// ListArticles returns the identity's saved articles newest first.
	// Fail-soft: an empty slice on any error, never a propagated failure.
	ListArticles(ctx context.Context, identity models.Identity) ([]*models.SavedArticle, error)

	// DeleteArticle removes an article the identity owns. Deleting a missing
	// or foreign-owned id is a silent no-op. Fail-loud on transport errors.
	DeleteArticle(ctx context.Context, identity models.Identity, articleID string) error

	// GetStats returns aggregate statistics for the identity.
	// Fail-soft: zero-valued stats on any error.
	GetStats(ctx context.Context, identity models.Identity) (*models.UserStats, error)

	// GetSettings returns the identity's settings.
	// Fail-soft: default settings on any error.
	GetSettings(ctx context.Context, identity models.Identity) (*models.UserSettings, error)

	// UpdateInterfaceLanguage overwrites the identity's interface-language
	// preference. Fail-loud.
	UpdateInterfaceLanguage(ctx context.Context, identity models.Identity, language models.InterfaceLanguage) error
}
