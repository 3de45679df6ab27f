package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// Local implements [Manager] over per-user JSON files, the storage format
// that predates the database. It remains fully functional so the migration
// engine can read it and tests can exercise both sides of the contract.
//
// Three files exist per identity, mirroring the original storage keys:
// savedArticles_<id>.json, userStats_<id>.json, userSettings_<id>.json.
// Articles are stored oldest first in a flat list.
type Local struct {
	dir    string
	logger *log.Logger
}

// NewLocal creates a file-backed [Manager] rooted at dir.
func NewLocal(dir string, logger *log.Logger) *Local {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Local{dir: dir, logger: logger}
}

// legacyArticle is the stored article shape.
type legacyArticle struct {
	ID      string `json:"id"`
	Topic   string `json:"topic"`
	Level   string `json:"level"`
	Content struct {
		Article    string                   `json:"article"`
		Vocabulary []models.VocabularyEntry `json:"vocabulary"`
	} `json:"content"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"userId,omitempty"`
}

// legacyStats is the stored statistics blob. It is maintained on write for
// compatibility with the original format, but reads recompute statistics from
// the article list so both Manager implementations present the same ranking
// semantics.
type legacyStats struct {
	TotalArticles     int            `json:"totalArticles"`
	FavoriteTopics    []string       `json:"favoriteTopics"`
	LevelDistribution map[string]int `json:"levelDistribution"`
	LastActivity      string         `json:"lastActivity"`
}

type legacySettings struct {
	InterfaceLanguage string `json:"interfaceLanguage"`
}

func (l *Local) articlesPath(identity models.Identity) string {
	return filepath.Join(l.dir, fmt.Sprintf("savedArticles_%s.json", identity))
}

func (l *Local) statsPath(identity models.Identity) string {
	return filepath.Join(l.dir, fmt.Sprintf("userStats_%s.json", identity))
}

func (l *Local) settingsPath(identity models.Identity) string {
	return filepath.Join(l.dir, fmt.Sprintf("userSettings_%s.json", identity))
}

// EnsureProfile synthesizes a profile from the files on disk; the legacy
// format has no profile record of its own.
func (l *Local) EnsureProfile(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if !identity.Valid() {
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidIdentity, identity)
	}

	profile := models.DefaultProfile(identity)
	profile.SetID(string(identity))

	settings, _ := l.GetSettings(ctx, identity)
	profile.SetLanguage(settings.InterfaceLanguage)

	articles, err := l.readArticles(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}
	profile.SetTotalArticles(len(articles))

	if len(articles) > 0 {
		if ts, ok := parseTimestamp(articles[len(articles)-1].Timestamp); ok {
			profile.SetUpdatedAt(ts)
		}
	}

	return profile, nil
}

// SaveArticle appends to the identity's article file and refreshes the stored
// statistics blob.
func (l *Local) SaveArticle(ctx context.Context, identity models.Identity, input models.ArticleInput) error {
	if err := input.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	articles, err := l.readArticles(identity)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrArticleSave, err)
	}

	entry := legacyArticle{
		ID:        shared.GenerateID(),
		Topic:     input.Topic,
		Level:     input.Level,
		Timestamp: time.Now().Format(time.RFC3339Nano),
		UserID:    string(identity),
	}
	entry.Content.Article = input.Article
	entry.Content.Vocabulary = input.Vocabulary

	articles = append(articles, entry)
	if err := l.writeJSON(l.articlesPath(identity), articles); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrArticleSave, err)
	}

	l.updateStatsBlob(identity, input.Topic, input.Level)
	return nil
}

// updateStatsBlob maintains the legacy on-write statistics: a recency-ordered
// topic list capped at five and an incrementally built level distribution.
// Best-effort, like the backend's statistics update.
func (l *Local) updateStatsBlob(identity models.Identity, topic, level string) {
	var stats legacyStats
	if err := l.readJSON(l.statsPath(identity), &stats); err != nil {
		l.logger.Error("failed to read legacy stats", "identity", identity, "err", err)
		return
	}

	if stats.LevelDistribution == nil {
		stats.LevelDistribution = map[string]int{}
	}

	topics := make([]string, 0, len(stats.FavoriteTopics)+1)
	topics = append(topics, topic)
	for _, t := range stats.FavoriteTopics {
		if t != topic {
			topics = append(topics, t)
		}
	}
	if len(topics) > 5 {
		topics = topics[:5]
	}

	stats.TotalArticles++
	stats.FavoriteTopics = topics
	stats.LevelDistribution[level]++
	stats.LastActivity = time.Now().Format(time.RFC3339Nano)

	if err := l.writeJSON(l.statsPath(identity), stats); err != nil {
		l.logger.Error("failed to write legacy stats", "identity", identity, "err", err)
	}
}

// ListArticles returns the identity's articles newest first. Fail-soft.
func (l *Local) ListArticles(ctx context.Context, identity models.Identity) ([]*models.SavedArticle, error) {
	entries, err := l.readArticles(identity)
	if err != nil {
		l.logger.Error("failed to read legacy articles", "identity", identity, "err", err)
		return []*models.SavedArticle{}, nil
	}

	// Stored oldest first; present newest first.
	articles := make([]*models.SavedArticle, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		articles = append(articles, toSavedArticle(identity, entries[i]))
	}
	return articles, nil
}

// DeleteArticle removes the article with the given id from the identity's
// file. Unknown ids are a silent no-op; foreign-owned articles are unreachable
// because each identity has its own file.
func (l *Local) DeleteArticle(ctx context.Context, identity models.Identity, articleID string) error {
	entries, err := l.readArticles(identity)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ID != articleID {
			kept = append(kept, e)
		}
	}

	if len(kept) == len(entries) {
		return nil
	}

	return l.writeJSON(l.articlesPath(identity), kept)
}

// GetStats recomputes statistics from the article list so the ranking matches
// the backend's count-descending semantics. Fail-soft.
func (l *Local) GetStats(ctx context.Context, identity models.Identity) (*models.UserStats, error) {
	entries, err := l.readArticles(identity)
	if err != nil {
		l.logger.Error("failed to read legacy articles for stats", "identity", identity, "err", err)
		return models.ZeroStats(), nil
	}

	stats := models.ZeroStats()
	stats.TotalArticles = len(entries)

	counts := map[string]int{}
	var order []string
	var last time.Time
	for _, e := range entries {
		if counts[e.Topic] == 0 {
			order = append(order, e.Topic)
		}
		counts[e.Topic]++
		stats.LevelDistribution[e.Level]++

		if ts, ok := parseTimestamp(e.Timestamp); ok && ts.After(last) {
			last = ts
		}
	}
	if !last.IsZero() {
		stats.LastActivity = last
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > FavoriteTopicLimit {
		order = order[:FavoriteTopicLimit]
	}
	stats.FavoriteTopics = order

	return stats, nil
}

// GetSettings reads the identity's settings file. Fail-soft.
func (l *Local) GetSettings(ctx context.Context, identity models.Identity) (*models.UserSettings, error) {
	var raw legacySettings
	if err := l.readJSON(l.settingsPath(identity), &raw); err != nil {
		l.logger.Error("failed to read legacy settings", "identity", identity, "err", err)
		return models.DefaultSettings(), nil
	}

	language, err := models.ParseLanguage(raw.InterfaceLanguage)
	if err != nil {
		return models.DefaultSettings(), nil
	}

	return &models.UserSettings{InterfaceLanguage: language}, nil
}

// UpdateInterfaceLanguage overwrites the identity's settings file.
func (l *Local) UpdateInterfaceLanguage(ctx context.Context, identity models.Identity, language models.InterfaceLanguage) error {
	if !language.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidLanguage, language)
	}

	raw := legacySettings{InterfaceLanguage: string(language)}
	if err := l.writeJSON(l.settingsPath(identity), raw); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSettingsUpdate, err)
	}

	return nil
}

// HasLegacyData reports whether an article file exists for the identity.
// Detection is presence-based only; it does not consider what the database
// already holds.
func (l *Local) HasLegacyData(identity models.Identity) bool {
	_, err := os.Stat(l.articlesPath(identity))
	return err == nil
}

// LegacyArticles returns the identity's stored articles in their original
// order (oldest first), the order migration replays them in.
func (l *Local) LegacyArticles(identity models.Identity) ([]models.ArticleInput, error) {
	entries, err := l.readArticles(identity)
	if err != nil {
		return nil, err
	}

	inputs := make([]models.ArticleInput, len(entries))
	for i, e := range entries {
		inputs[i] = models.ArticleInput{
			Topic:      e.Topic,
			Level:      e.Level,
			Article:    e.Content.Article,
			Vocabulary: e.Content.Vocabulary,
		}
	}
	return inputs, nil
}

// ClearLegacy deletes the identity's three legacy files. Missing files are
// ignored so the clear is idempotent.
func (l *Local) ClearLegacy(identity models.Identity) error {
	for _, path := range []string{l.articlesPath(identity), l.statsPath(identity), l.settingsPath(identity)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

func (l *Local) readArticles(identity models.Identity) ([]legacyArticle, error) {
	var entries []legacyArticle
	if err := l.readJSON(l.articlesPath(identity), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// readJSON decodes the file at path into out. A missing file leaves out at
// its zero value.
func (l *Local) readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (l *Local) writeJSON(path string, v any) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func toSavedArticle(identity models.Identity, entry legacyArticle) *models.SavedArticle {
	article := models.NewSavedArticle(0, string(identity), models.ArticleInput{
		Topic:      entry.Topic,
		Level:      entry.Level,
		Article:    entry.Content.Article,
		Vocabulary: entry.Content.Vocabulary,
	})
	article.SetID(entry.ID)
	if ts, ok := parseTimestamp(entry.Timestamp); ok {
		article.SetCreatedAt(ts)
	}
	return article
}

func parseTimestamp(s string) (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

var _ Manager = (*Local)(nil)
