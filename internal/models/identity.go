package models

import (
	"fmt"

	"github.com/dokusho-app/dokusho/internal/shared"
)

// Identity is a logical user slot. The deployment manages two fixed learners,
// but the identity space is kept open so new slots only need a new constant
// and a default profile.
type Identity string

const (
	IdentityUser1 Identity = "user1" // NAMICHI, studying Spanish (DELE)
	IdentityUser2 Identity = "user2" // JOSÉ, studying Japanese (JLPT)
)

// Identities lists every known user slot.
func Identities() []Identity {
	return []Identity{IdentityUser1, IdentityUser2}
}

// Valid reports whether the identity is one of the known user slots.
func (i Identity) Valid() bool {
	switch i {
	case IdentityUser1, IdentityUser2:
		return true
	}
	return false
}

func (i Identity) String() string { return string(i) }

// ParseIdentity converts a raw string into an [Identity].
func ParseIdentity(s string) (Identity, error) {
	id := Identity(s)
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidIdentity, s)
	}
	return id, nil
}

// InterfaceLanguage selects which string table the UI renders.
type InterfaceLanguage string

const (
	LanguageSpanish  InterfaceLanguage = "spanish"
	LanguageEnglish  InterfaceLanguage = "english"
	LanguageJapanese InterfaceLanguage = "japanese"
)

// DefaultLanguage is applied to profiles and settings that have never been
// configured.
const DefaultLanguage = LanguageSpanish

// Valid reports whether the language is supported.
func (l InterfaceLanguage) Valid() bool {
	switch l {
	case LanguageSpanish, LanguageEnglish, LanguageJapanese:
		return true
	}
	return false
}

func (l InterfaceLanguage) String() string { return string(l) }

// ParseLanguage converts a raw string into an [InterfaceLanguage].
func ParseLanguage(s string) (InterfaceLanguage, error) {
	l := InterfaceLanguage(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidLanguage, s)
	}
	return l, nil
}

// TargetLanguage is the language a learner practices, which governs the
// generation prompt and whether vocabulary readings apply.
type TargetLanguage string

const (
	TargetSpanish  TargetLanguage = "spanish"
	TargetJapanese TargetLanguage = "japanese"
)

// TargetFor maps a user slot to the language that user is studying.
func TargetFor(identity Identity) TargetLanguage {
	if identity == IdentityUser2 {
		return TargetJapanese
	}
	return TargetSpanish
}

// Levels returns the proficiency tiers offered to an identity: DELE grades for
// the Spanish learner, JLPT grades for the Japanese learner.
func Levels(identity Identity) []string {
	if TargetFor(identity) == TargetJapanese {
		return []string{"N5", "N4", "N3", "N2", "N1"}
	}
	return []string{"A1", "A2", "B1", "B2", "C1", "C2"}
}
