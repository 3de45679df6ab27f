package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// ArticleRepository handles [models.SavedArticle] persistence.
//
// Vocabulary entries are denormalized into the article row as a JSON column;
// they are never queried independently of their article.
type ArticleRepository struct {
	db *sql.DB
}

// NewArticleRepository creates a new [ArticleRepository] with the given database connection
func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Create inserts a new article into the database with generated ID and sequence
func (r *ArticleRepository) Create(article *models.SavedArticle) error {
	sequence, err := NextSequence(r.db, "saved_articles")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	article.SetID(id)

	if err := article.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	vocabulary, err := json.Marshal(article.Vocabulary())
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}

	query := `
		INSERT INTO saved_articles (id, sequence, user_id, topic, level, article_content, vocabulary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		article.ProfileID(),
		article.Topic(),
		article.Level(),
		article.Content(),
		string(vocabulary),
		article.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// Get retrieves an article by ID
func (r *ArticleRepository) Get(id string) (*models.SavedArticle, error) {
	query := articleSelect + " WHERE id = ?"

	row := r.db.QueryRow(query, id)
	article, err := scanArticle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrArticleNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// ListByProfile retrieves all articles owned by a profile, newest first.
// Sequence breaks ties between articles created within the same timestamp.
func (r *ArticleRepository) ListByProfile(profileID string) ([]*models.SavedArticle, error) {
	query := articleSelect + " WHERE user_id = ? ORDER BY created_at DESC, sequence DESC"

	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.SavedArticle
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return articles, nil
}

// DeleteOwned removes an article only if it is owned by the given profile.
// A missing or foreign-owned id is a silent no-op.
func (r *ArticleRepository) DeleteOwned(id, profileID string) error {
	query := `DELETE FROM saved_articles WHERE id = ? AND user_id = ?`

	if _, err := r.db.Exec(query, id, profileID); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	return nil
}

// LevelCounts returns the number of a profile's saved articles per level code,
// computed at query time from the article rows.
func (r *ArticleRepository) LevelCounts(profileID string) (map[string]int, error) {
	query := `SELECT level, COUNT(*) FROM saved_articles WHERE user_id = ? GROUP BY level`

	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query level counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan level count: %w", err)
		}
		counts[level] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

const articleSelect = `
	SELECT id, sequence, user_id, topic, level, article_content, vocabulary, created_at
	FROM saved_articles
`

// scanArticle scans one article row via the provided Scan function.
func scanArticle(scan func(dest ...any) error) (*models.SavedArticle, error) {
	var (
		id         string
		sequence   int
		profileID  string
		topic      string
		level      string
		content    string
		vocabulary string
		createdAt  time.Time
	)

	err := scan(&id, &sequence, &profileID, &topic, &level, &content, &vocabulary, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	var entries []models.VocabularyEntry
	if vocabulary != "" {
		if err := json.Unmarshal([]byte(vocabulary), &entries); err != nil {
			return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
		}
	}

	article := models.NewSavedArticle(sequence, profileID, models.ArticleInput{
		Topic:      topic,
		Level:      level,
		Article:    content,
		Vocabulary: entries,
	})
	article.SetID(id)
	article.SetCreatedAt(createdAt)

	return article, nil
}
