package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// TopicRepository maintains per-profile favorite topic counters.
type TopicRepository struct {
	db *sql.DB
}

// NewTopicRepository creates a new [TopicRepository] with the given database connection
func NewTopicRepository(db *sql.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Upsert records one occurrence of topic for the profile: inserts a new
// counter at one, or atomically increments an existing one.
func (r *TopicRepository) Upsert(profileID, topic string) error {
	if topic == "" {
		return fmt.Errorf("topic must be non-empty")
	}

	query := `
		INSERT INTO favorite_topics (id, user_id, topic, count, updated_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(user_id, topic) DO UPDATE SET
			count = favorite_topics.count + 1,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, shared.GenerateID(), profileID, topic, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert topic: %w", err)
	}

	return nil
}

// TopByCount returns a profile's topics ranked by occurrence count descending,
// ties broken by most recent update, truncated to limit.
func (r *TopicRepository) TopByCount(profileID string, limit int) ([]models.FavoriteTopic, error) {
	query := `
		SELECT id, user_id, topic, count, updated_at
		FROM favorite_topics
		WHERE user_id = ?
		ORDER BY count DESC, updated_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	var topics []models.FavoriteTopic
	for rows.Next() {
		var t models.FavoriteTopic
		if err := rows.Scan(&t.ID, &t.ProfileID, &t.Topic, &t.Count, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return topics, nil
}

// Get retrieves a single (profile, topic) counter, mainly for tests and debugging.
func (r *TopicRepository) Get(profileID, topic string) (*models.FavoriteTopic, error) {
	query := `
		SELECT id, user_id, topic, count, updated_at
		FROM favorite_topics
		WHERE user_id = ? AND topic = ?
	`

	var t models.FavoriteTopic
	err := r.db.QueryRow(query, profileID, topic).Scan(&t.ID, &t.ProfileID, &t.Topic, &t.Count, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("topic not found: %s", topic)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query topic: %w", err)
	}

	return &t, nil
}
