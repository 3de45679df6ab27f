package models

import (
	"fmt"
	"time"
)

// VocabularyEntry is one word from a generated article's vocabulary list.
// Reading carries the pronunciation annotation for Japanese words and is
// empty for Spanish vocabulary.
type VocabularyEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Reading string `json:"reading,omitempty"`
}

// ArticleInput is a generated-and-reviewed article as submitted for saving.
type ArticleInput struct {
	Topic      string            `json:"topic"`
	Level      string            `json:"level"`
	Article    string            `json:"article"`
	Vocabulary []VocabularyEntry `json:"vocabulary"`
}

// Validate checks the input before it reaches a store.
func (in ArticleInput) Validate() error {
	if in.Topic == "" {
		return fmt.Errorf("article topic is required")
	}
	if in.Level == "" {
		return fmt.Errorf("article level is required")
	}
	if in.Article == "" {
		return fmt.Errorf("article content is required")
	}
	return nil
}

// SavedArticle is a persisted practice article owned by a single profile.
// Immutable after creation except for deletion.
type SavedArticle struct {
	id         string
	sequence   int
	profileID  string
	topic      string
	level      string
	content    string
	vocabulary []VocabularyEntry
	createdAt  time.Time
}

// NewSavedArticle creates an article record owned by profileID with the creation timestamp set to now.
func NewSavedArticle(sequence int, profileID string, input ArticleInput) *SavedArticle {
	return &SavedArticle{
		sequence:   sequence,
		profileID:  profileID,
		topic:      input.Topic,
		level:      input.Level,
		content:    input.Article,
		vocabulary: input.Vocabulary,
		createdAt:  time.Now(),
	}
}

func (a *SavedArticle) ID() string                    { return a.id }
func (a *SavedArticle) Sequence() int                 { return a.sequence }
func (a *SavedArticle) ProfileID() string             { return a.profileID }
func (a *SavedArticle) Topic() string                 { return a.topic }
func (a *SavedArticle) Level() string                 { return a.level }
func (a *SavedArticle) Content() string               { return a.content }
func (a *SavedArticle) Vocabulary() []VocabularyEntry { return a.vocabulary }
func (a *SavedArticle) CreatedAt() time.Time          { return a.createdAt }

// UpdatedAt returns the creation time; saved articles are never modified.
func (a *SavedArticle) UpdatedAt() time.Time { return a.createdAt }

func (a *SavedArticle) SetID(id string)          { a.id = id }
func (a *SavedArticle) SetCreatedAt(t time.Time) { a.createdAt = t }

// Validate checks the article's data before persistence.
func (a *SavedArticle) Validate() error {
	if a.profileID == "" {
		return fmt.Errorf("article owner profile is required")
	}
	if a.topic == "" {
		return fmt.Errorf("article topic is required")
	}
	if a.level == "" {
		return fmt.Errorf("article level is required")
	}
	if a.content == "" {
		return fmt.Errorf("article content is required")
	}
	return nil
}

// Input converts the stored article back into the submission shape, used when
// re-saving during migration and for API responses.
func (a *SavedArticle) Input() ArticleInput {
	return ArticleInput{
		Topic:      a.topic,
		Level:      a.level,
		Article:    a.content,
		Vocabulary: a.vocabulary,
	}
}
