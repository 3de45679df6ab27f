package models

import "time"

// FavoriteTopic is a per-profile topic occurrence counter, maintained as a
// side effect of article saves and never written directly by the UI.
type FavoriteTopic struct {
	ID        string
	ProfileID string
	Topic     string
	Count     int
	UpdatedAt time.Time
}

// UserStats is the aggregate view of a profile's saved articles.
type UserStats struct {
	TotalArticles     int            `json:"totalArticles"`
	FavoriteTopics    []string       `json:"favoriteTopics"`
	LevelDistribution map[string]int `json:"levelDistribution"`
	LastActivity      time.Time      `json:"lastActivity"`
}

// ZeroStats is the fail-soft default returned when statistics cannot be read.
func ZeroStats() *UserStats {
	return &UserStats{
		FavoriteTopics:    []string{},
		LevelDistribution: map[string]int{},
		LastActivity:      time.Now(),
	}
}

// UserSettings holds the single preference governing UI string rendering.
type UserSettings struct {
	InterfaceLanguage InterfaceLanguage `json:"interfaceLanguage"`
}

// DefaultSettings is the fallback for identities that have never been configured.
func DefaultSettings() *UserSettings {
	return &UserSettings{InterfaceLanguage: DefaultLanguage}
}
