// Package annotate fills in missing reading annotations for Japanese
// vocabulary entries using the kagome morphological analyzer.
//
// Generated vocabulary lists usually carry readings already; annotation is a
// backstop applied on the save path so stored Japanese vocabulary never lacks
// one.
package annotate

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/dokusho-app/dokusho/internal/models"
)

// Annotator derives hiragana readings for Japanese words.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// New creates an Annotator backed by the IPA dictionary.
func New() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// Reading returns the hiragana reading of word, or an empty string when the
// dictionary has no reading for it.
func (a *Annotator) Reading(word string) string {
	var parts []string

	for _, token := range a.t.Tokenize(word) {
		if token.Class == tokenizer.DUMMY {
			continue
		}

		// IPA feature index 7 holds the katakana reading.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			parts = append(parts, features[7])
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return hiragana(strings.Join(parts, ""))
}

// Fill returns a copy of entries where every Japanese word carries a reading.
// Entries that already have one, and non-Japanese words, pass through unchanged.
func (a *Annotator) Fill(entries []models.VocabularyEntry) []models.VocabularyEntry {
	out := make([]models.VocabularyEntry, len(entries))
	for i, entry := range entries {
		if entry.Reading == "" && ContainsJapanese(entry.Word) {
			entry.Reading = a.Reading(entry.Word)
		}
		out[i] = entry
	}
	return out
}

// ContainsJapanese reports whether s contains kana or kanji.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// hiragana converts katakana runes to their hiragana equivalents, leaving
// everything else (including the long-vowel mark) untouched.
func hiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - 0x60
		}
		return r
	}, s)
}
