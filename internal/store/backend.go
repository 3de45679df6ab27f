package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dokusho-app/dokusho/internal/annotate"
	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/repositories"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// Backend implements [Manager] over the SQLite database.
type Backend struct {
	profiles  *repositories.ProfileRepository
	articles  *repositories.ArticleRepository
	topics    *repositories.TopicRepository
	annotator *annotate.Annotator
	logger    *log.Logger
}

// BackendOpts contains construction options for [NewBackend].
type BackendOpts struct {
	DB        *sql.DB
	Logger    *log.Logger
	Annotator *annotate.Annotator // optional; readings are left as-is when nil
}

// NewBackend creates a database-backed [Manager].
func NewBackend(opts BackendOpts) *Backend {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Backend{
		profiles:  repositories.NewProfileRepository(opts.DB),
		articles:  repositories.NewArticleRepository(opts.DB),
		topics:    repositories.NewTopicRepository(opts.DB),
		annotator: opts.Annotator,
		logger:    opts.Logger,
	}
}

// EnsureProfile looks up the identity's profile, creating the default profile
// on first access. Repeated calls converge to the same record.
func (b *Backend) EnsureProfile(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if !identity.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidIdentity, identity)
	}

	profile, err := b.profiles.GetByIdentity(identity)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, shared.ErrProfileNotFound) {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	profile = models.DefaultProfile(identity)
	if err := b.profiles.Create(profile); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrProfileCreation, err)
	}

	b.logger.Info("created user profile", "identity", identity, "id", profile.ID())
	return profile, nil
}

// SaveArticle resolves the owning profile, inserts the article, then updates
// the identity's statistics.
//
// The statistics update is best-effort: a failure after a successful insert is
// logged and does not roll back the article. The counter can therefore trail
// the true article count until the next successful save.
func (b *Backend) SaveArticle(ctx context.Context, identity models.Identity, input models.ArticleInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		return err
	}

	if b.annotator != nil && models.TargetFor(identity) == models.TargetJapanese {
		input.Vocabulary = b.annotator.Fill(input.Vocabulary)
	}

	article := models.NewSavedArticle(0, profile.ID(), input)
	if err := b.articles.Create(article); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrArticleSave, err)
	}

	b.recordArticle(profile.ID(), input.Topic)
	return nil
}

// recordArticle applies the per-save statistics effects: the profile's article
// counter and the topic occurrence counter. Both increments happen inside the
// database, so no count is lost to concurrent saves.
func (b *Backend) recordArticle(profileID, topic string) {
	if err := b.profiles.IncrementArticleCount(profileID); err != nil {
		b.logger.Error("failed to update article counter", "profile", profileID, "err", err)
	}

	if err := b.topics.Upsert(profileID, topic); err != nil {
		b.logger.Error("failed to update favorite topic", "profile", profileID, "topic", topic, "err", err)
	}
}

// ListArticles returns the identity's articles newest first. Fail-soft.
func (b *Backend) ListArticles(ctx context.Context, identity models.Identity) ([]*models.SavedArticle, error) {
	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		b.logger.Error("failed to resolve profile for article list", "identity", identity, "err", err)
		return []*models.SavedArticle{}, nil
	}

	articles, err := b.articles.ListByProfile(profile.ID())
	if err != nil {
		b.logger.Error("failed to list articles", "identity", identity, "err", err)
		return []*models.SavedArticle{}, nil
	}

	if articles == nil {
		articles = []*models.SavedArticle{}
	}
	return articles, nil
}

// DeleteArticle removes an article scoped to the identity's own profile.
func (b *Backend) DeleteArticle(ctx context.Context, identity models.Identity, articleID string) error {
	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		return err
	}

	return b.articles.DeleteOwned(articleID, profile.ID())
}

// GetStats composes the identity's aggregate statistics. The topic ranking is
// maintained incrementally; the level distribution is computed at read time
// from the article rows. Fail-soft.
func (b *Backend) GetStats(ctx context.Context, identity models.Identity) (*models.UserStats, error) {
	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		b.logger.Error("failed to resolve profile for stats", "identity", identity, "err", err)
		return models.ZeroStats(), nil
	}

	topics, err := b.topics.TopByCount(profile.ID(), FavoriteTopicLimit)
	if err != nil {
		b.logger.Error("failed to read favorite topics", "identity", identity, "err", err)
		return models.ZeroStats(), nil
	}

	levels, err := b.articles.LevelCounts(profile.ID())
	if err != nil {
		b.logger.Error("failed to read level distribution", "identity", identity, "err", err)
		return models.ZeroStats(), nil
	}

	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Topic
	}

	return &models.UserStats{
		TotalArticles:     profile.TotalArticles(),
		FavoriteTopics:    names,
		LevelDistribution: levels,
		LastActivity:      profile.UpdatedAt(),
	}, nil
}

// GetSettings returns the identity's interface-language preference. Fail-soft.
func (b *Backend) GetSettings(ctx context.Context, identity models.Identity) (*models.UserSettings, error) {
	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		b.logger.Error("failed to resolve profile for settings", "identity", identity, "err", err)
		return models.DefaultSettings(), nil
	}

	return &models.UserSettings{InterfaceLanguage: profile.Language()}, nil
}

// UpdateInterfaceLanguage overwrites the identity's language preference.
func (b *Backend) UpdateInterfaceLanguage(ctx context.Context, identity models.Identity, language models.InterfaceLanguage) error {
	if !language.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidLanguage, language)
	}

	profile, err := b.EnsureProfile(ctx, identity)
	if err != nil {
		return err
	}

	if err := b.profiles.UpdateLanguage(profile.ID(), language); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSettingsUpdate, err)
	}

	return nil
}

var _ Manager = (*Backend)(nil)
