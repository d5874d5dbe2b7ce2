package game

import (
	"strings"
	"unicode"

	"github.com/example/espabot/pkg/models"
)

// NormalizeAnswer lowercases the text, strips punctuation, and collapses
// whitespace. Accents are kept: "está" and "esta" are different words.
func NormalizeAnswer(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CheckFlashcardAnswer reports whether a typed answer matches the English
// side of the card, falling back to the English synonym list.
func CheckFlashcardAnswer(word models.WordRecord, answer string) bool {
	normalized := NormalizeAnswer(answer)
	if normalized == "" {
		return false
	}
	if normalized == NormalizeAnswer(word.English) {
		return true
	}
	for _, synonym := range word.SynonymsEnglish {
		if normalized == NormalizeAnswer(synonym) {
			return true
		}
	}
	return false
}
