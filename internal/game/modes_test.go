package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/example/espabot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peerWords() []models.WordRecord {
	return []models.WordRecord{
		{ID: 1, Spanish: "perro", English: "dog"},
		{ID: 2, Spanish: "gato", English: "cat"},
		{ID: 3, Spanish: "casa", English: "house"},
		{ID: 4, Spanish: "agua", English: "water"},
		{ID: 5, Spanish: "libro", English: "book"},
		{ID: 6, Spanish: "mesa", English: "table"},
	}
}

func TestMatchingModeQuestion(t *testing.T) {
	mode := NewMatchingMode()
	peers := peerWords()

	q, err := mode.BuildQuestion(context.Background(), peers[0], peers)

	require.NoError(t, err)
	assert.Equal(t, "perro", q.Prompt)
	require.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, "dog")

	seen := make(map[string]bool)
	for _, opt := range q.Options {
		assert.False(t, seen[opt], "option %q duplicated", opt)
		seen[opt] = true
	}

	assert.True(t, mode.CheckAnswer(q, "dog"))
	assert.True(t, mode.CheckAnswer(q, " DOG! "))
	assert.False(t, mode.CheckAnswer(q, "cat"))
}

func TestMatchingModeNeedsDistinctDecoys(t *testing.T) {
	mode := NewMatchingMode()
	// Same translation everywhere leaves no usable decoys
	peers := []models.WordRecord{
		{ID: 1, Spanish: "coche", English: "car"},
		{ID: 2, Spanish: "carro", English: "car"},
		{ID: 3, Spanish: "auto", English: "car"},
		{ID: 4, Spanish: "automóvil", English: "car"},
	}

	_, err := mode.BuildQuestion(context.Background(), peers[0], peers)

	assert.Error(t, err)
}

type stubSentences struct {
	sentence string
	err      error
}

func (s *stubSentences) SearchExample(ctx context.Context, word string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.sentence, nil
}

func TestFillBlankModeQuestion(t *testing.T) {
	mode := NewFillBlankMode(&stubSentences{sentence: "El perro come mucho."})
	word := models.WordRecord{ID: 1, Spanish: "perro", English: "dog"}

	q, err := mode.BuildQuestion(context.Background(), word, nil)

	require.NoError(t, err)
	assert.Equal(t, "El ____ come mucho.", q.Sentence)
	assert.Equal(t, "dog", q.Prompt)
	assert.True(t, mode.CheckAnswer(q, "perro"))
	assert.True(t, mode.CheckAnswer(q, "Perro"))
	assert.False(t, mode.CheckAnswer(q, "gato"))
}

func TestFillBlankModeSentenceMissingWord(t *testing.T) {
	mode := NewFillBlankMode(&stubSentences{sentence: "No hay nada aquí."})
	word := models.WordRecord{ID: 1, Spanish: "perro", English: "dog"}

	_, err := mode.BuildQuestion(context.Background(), word, nil)

	assert.Error(t, err)
}

func TestFillBlankModeLookupError(t *testing.T) {
	mode := NewFillBlankMode(&stubSentences{err: fmt.Errorf("service unavailable")})
	word := models.WordRecord{ID: 1, Spanish: "perro", English: "dog"}

	_, err := mode.BuildQuestion(context.Background(), word, nil)

	assert.Error(t, err)
}

func TestFillBlankModeFiltersLongPhrases(t *testing.T) {
	mode := NewFillBlankMode(&stubSentences{})
	words := []models.WordRecord{
		{ID: 1, Spanish: "perro", English: "dog"},
		{ID: 2, Spanish: "tener que", English: "to have to"},
		{ID: 3, Spanish: "echar de menos", English: "to miss"},
		{ID: 4, Spanish: "ponerse de pie ahora", English: "to stand up now"},
	}

	candidates := mode.FilterCandidates(words)

	require.Len(t, candidates, 3)
	for _, w := range candidates {
		assert.NotEqual(t, int64(4), w.ID)
	}
}

func TestBlankOutCaseInsensitive(t *testing.T) {
	blanked, ok := blankOut("Perro grande.", "perro")
	assert.True(t, ok)
	assert.Equal(t, "____ grande.", blanked)

	_, ok = blankOut("Gato grande.", "perro")
	assert.False(t, ok)
}
