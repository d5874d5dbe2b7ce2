package game

import (
	"testing"

	"github.com/example/espabot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Hola", "hola"},
		{"strips punctuation", "¿cómo estás?", "cómo estás"},
		{"keeps accents", "está", "está"},
		{"collapses whitespace", "  to   run  ", "to run"},
		{"keeps enye", "mañana", "mañana"},
		{"empty", "", ""},
		{"punctuation only", "!?.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAnswer(tt.in))
		})
	}
}

func TestNormalizeAnswerAccentSensitive(t *testing.T) {
	// "esta" and "está" must stay distinct after normalization
	assert.NotEqual(t, NormalizeAnswer("esta"), NormalizeAnswer("está"))
}

func TestCheckFlashcardAnswer(t *testing.T) {
	word := models.WordRecord{
		Spanish:         "correr",
		English:         "to run",
		SynonymsEnglish: models.StringList{"to jog", "to sprint"},
	}

	assert.True(t, CheckFlashcardAnswer(word, "to run"))
	assert.True(t, CheckFlashcardAnswer(word, "  To  RUN! "))
	assert.True(t, CheckFlashcardAnswer(word, "to jog"))
	assert.True(t, CheckFlashcardAnswer(word, "to sprint"))
	assert.False(t, CheckFlashcardAnswer(word, "to walk"))
	assert.False(t, CheckFlashcardAnswer(word, ""))
	assert.False(t, CheckFlashcardAnswer(word, "?!"))
}
