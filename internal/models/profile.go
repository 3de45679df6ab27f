package models

import (
	"fmt"
	"time"
)

// UserProfile is the durable record of a user identity's display metadata,
// interface-language preference, and running article count.
//
// Exactly one profile exists per identity; it is created lazily on first
// access and never deleted in normal operation.
type UserProfile struct {
	id            string
	sequence      int
	identity      Identity
	name          string
	description   string
	language      InterfaceLanguage
	totalArticles int
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUserProfile creates a profile for the given identity with creation timestamps set to now.
func NewUserProfile(sequence int, identity Identity, name, description string) *UserProfile {
	now := time.Now()
	return &UserProfile{
		sequence:    sequence,
		identity:    identity,
		name:        name,
		description: description,
		language:    DefaultLanguage,
		createdAt:   now,
		updatedAt:   now,
	}
}

// DefaultProfile constructs the fixed default profile for a user slot, used
// when first access finds no stored profile.
func DefaultProfile(identity Identity) *UserProfile {
	if identity == IdentityUser2 {
		return NewUserProfile(0, identity, "JOSÉ", "スペイン語話者、日本語を学習中")
	}
	return NewUserProfile(0, identity, "NAMICHI", "スペイン語学習者、スペインのニュースを読むのが好き")
}

func (p *UserProfile) ID() string                  { return p.id }
func (p *UserProfile) Sequence() int               { return p.sequence }
func (p *UserProfile) Identity() Identity          { return p.identity }
func (p *UserProfile) Name() string                { return p.name }
func (p *UserProfile) Description() string         { return p.description }
func (p *UserProfile) Language() InterfaceLanguage { return p.language }
func (p *UserProfile) TotalArticles() int          { return p.totalArticles }
func (p *UserProfile) CreatedAt() time.Time        { return p.createdAt }
func (p *UserProfile) UpdatedAt() time.Time        { return p.updatedAt }

func (p *UserProfile) SetID(id string)                       { p.id = id }
func (p *UserProfile) SetLanguage(l InterfaceLanguage)       { p.language = l }
func (p *UserProfile) SetTotalArticles(n int)                { p.totalArticles = n }
func (p *UserProfile) SetCreatedAt(t time.Time)              { p.createdAt = t }
func (p *UserProfile) SetUpdatedAt(t time.Time)              { p.updatedAt = t }

// Validate checks the profile's data before persistence.
func (p *UserProfile) Validate() error {
	if !p.identity.Valid() {
		return fmt.Errorf("profile identity is invalid: %q", p.identity)
	}
	if p.name == "" {
		return fmt.Errorf("profile name is required")
	}
	if !p.language.Valid() {
		return fmt.Errorf("profile interface language is invalid: %q", p.language)
	}
	if p.totalArticles < 0 {
		return fmt.Errorf("profile article count cannot be negative")
	}
	return nil
}
