package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dokusho-app/dokusho/internal/models"
	"github.com/dokusho-app/dokusho/internal/shared"
)

// ProfileRepository handles [models.UserProfile] persistence.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new [ProfileRepository] with the given database connection
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile into the database with generated ID and sequence
func (r *ProfileRepository) Create(profile *models.UserProfile) error {
	sequence, err := NextSequence(r.db, "user_profiles")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	profile.SetID(id)

	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO user_profiles (id, sequence, user_type, name, description, interface_language, total_articles, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		string(profile.Identity()),
		profile.Name(),
		profile.Description(),
		string(profile.Language()),
		profile.TotalArticles(),
		profile.CreatedAt(),
		profile.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Get retrieves a profile by ID
func (r *ProfileRepository) Get(id string) (*models.UserProfile, error) {
	query := profileSelect + " WHERE id = ?"
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByIdentity retrieves a profile by its identity key.
// Returns [shared.ErrProfileNotFound] when no profile exists for the identity.
func (r *ProfileRepository) GetByIdentity(identity models.Identity) (*models.UserProfile, error) {
	query := profileSelect + " WHERE user_type = ?"
	return r.scanOne(r.db.QueryRow(query, string(identity)))
}

// UpdateLanguage overwrites the interface-language preference and refreshes the update timestamp
func (r *ProfileRepository) UpdateLanguage(id string, language models.InterfaceLanguage) error {
	query := `
		UPDATE user_profiles
		SET interface_language = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, string(language), time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrProfileNotFound, id)
	}

	return nil
}

// IncrementArticleCount adds one to the profile's running article counter.
//
// The increment happens inside the database rather than read-modify-write so
// concurrent saves cannot lose a count.
func (r *ProfileRepository) IncrementArticleCount(id string) error {
	query := `
		UPDATE user_profiles
		SET total_articles = total_articles + 1, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to increment article count: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrProfileNotFound, id)
	}

	return nil
}

// List retrieves all profiles matching the given criteria
func (r *ProfileRepository) List(criteria map[string]any) ([]*models.UserProfile, error) {
	query := profileSelect + " WHERE 1=1"
	args := []any{}

	if identity, ok := criteria["user_type"].(string); ok && identity != "" {
		query += " AND user_type = ?"
		args = append(args, identity)
	}

	if language, ok := criteria["interface_language"].(string); ok && language != "" {
		query += " AND interface_language = ?"
		args = append(args, language)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		profile, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return profiles, nil
}

const profileSelect = `
	SELECT id, sequence, user_type, name, description, interface_language, total_articles, created_at, updated_at
	FROM user_profiles
`

// scanOne scans a single [sql.Row] into a [models.UserProfile]
func (r *ProfileRepository) scanOne(row *sql.Row) (*models.UserProfile, error) {
	var (
		id            string
		sequence      int
		identity      string
		name          string
		description   string
		language      string
		totalArticles int
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(&id, &sequence, &identity, &name, &description, &language, &totalArticles, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	return buildProfile(id, sequence, identity, name, description, language, totalArticles, createdAt, updatedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.UserProfile]
func (r *ProfileRepository) scanRow(rows *sql.Rows) (*models.UserProfile, error) {
	var (
		id            string
		sequence      int
		identity      string
		name          string
		description   string
		language      string
		totalArticles int
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := rows.Scan(&id, &sequence, &identity, &name, &description, &language, &totalArticles, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	return buildProfile(id, sequence, identity, name, description, language, totalArticles, createdAt, updatedAt), nil
}

func buildProfile(id string, sequence int, identity, name, description, language string, totalArticles int, createdAt, updatedAt time.Time) *models.UserProfile {
	profile := models.NewUserProfile(sequence, models.Identity(identity), name, description)
	profile.SetID(id)
	profile.SetLanguage(models.InterfaceLanguage(language))
	profile.SetTotalArticles(totalArticles)
	profile.SetCreatedAt(createdAt)
	profile.SetUpdatedAt(updatedAt)
	return profile
}
