// Package models defines domain entities and persistence interfaces for the language practice service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs exchanged with the UI and generation layers
//   - [ArticleInput] : A generated article ready to be saved
//   - [VocabularyEntry] : A word with its meaning and optional reading annotation
//   - [UserStats] : Aggregated per-user statistics
//   - [UserSettings] : The interface-language preference
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [UserProfile] : A learner's durable profile with aggregate counters
//   - [SavedArticle] : A saved practice article with denormalized vocabulary
//   - [FavoriteTopic] : Per-profile topic occurrence counts
//
// [UserProfile] and [SavedArticle] implement the [Model] interface providing identifiers,
// timestamps, and validation; [FavoriteTopic] is a plain counter row maintained by the
// statistics layer.
package models
