package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/espabot/pkg/models"
)

// Game type tags recorded into per-word game performance counters
const (
	TypeFlashcards  = "flashcards"
	TypeMatching    = "matching"
	TypeFillBlank   = "fill_in_blank"
	TypeConjugation = "conjugation"
)

// MinMatchingWords is the smallest vocabulary the matching game can run on:
// one prompt plus three decoys needs headroom to avoid repeating options.
const MinMatchingWords = 6

// ConjugationQuestionCount fixes the length of a conjugation game
const ConjugationQuestionCount = 10

// Question is one prompt presented to the user
type Question struct {
	Word     models.WordRecord
	Prompt   string
	Options  []string // shuffled choices for matching questions
	Answer   string   // expected answer, pre-normalized
	Sentence string   // blanked sentence for fill-in-the-blank questions
}

// Mode describes one game: which words qualify, how a question is built,
// and how an answer is judged.
type Mode interface {
	Type() string
	MinWords() int
	// QuestionLimit returns the fixed question count, 0 for endless modes
	QuestionLimit() int
	FilterCandidates(words []models.WordRecord) []models.WordRecord
	BuildQuestion(ctx context.Context, word models.WordRecord, peers []models.WordRecord) (*Question, error)
	CheckAnswer(q *Question, answer string) bool
}

// MatchingMode shows a Spanish word and four English options
type MatchingMode struct {
	rnd *rand.Rand
}

// NewMatchingMode creates the matching game mode
func NewMatchingMode() *MatchingMode {
	return &MatchingMode{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *MatchingMode) Type() string       { return TypeMatching }
func (m *MatchingMode) MinWords() int      { return MinMatchingWords }
func (m *MatchingMode) QuestionLimit() int { return 0 }

// FilterCandidates accepts any word pair
func (m *MatchingMode) FilterCandidates(words []models.WordRecord) []models.WordRecord {
	return words
}

// BuildQuestion picks three decoy translations from the peer words
func (m *MatchingMode) BuildQuestion(_ context.Context, word models.WordRecord, peers []models.WordRecord) (*Question, error) {
	var decoys []string
	for _, p := range peers {
		if p.ID == word.ID || NormalizeAnswer(p.English) == NormalizeAnswer(word.English) {
			continue
		}
		decoys = append(decoys, p.English)
	}
	if len(decoys) < 3 {
		return nil, fmt.Errorf("not enough distinct translations for %q", word.Spanish)
	}

	m.rnd.Shuffle(len(decoys), func(i, j int) { decoys[i], decoys[j] = decoys[j], decoys[i] })
	options := append([]string{word.English}, decoys[:3]...)
	m.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return &Question{
		Word:    word,
		Prompt:  word.Spanish,
		Options: options,
		Answer:  NormalizeAnswer(word.English),
	}, nil
}

func (m *MatchingMode) CheckAnswer(q *Question, answer string) bool {
	return NormalizeAnswer(answer) == q.Answer
}

// SentenceSource looks up an example sentence containing a word
type SentenceSource interface {
	SearchExample(ctx context.Context, word string) (string, error)
}

// FillBlankMode blanks the Spanish word out of an example sentence
type FillBlankMode struct {
	sentences SentenceSource
}

// NewFillBlankMode creates the fill-in-the-blank game mode
func NewFillBlankMode(sentences SentenceSource) *FillBlankMode {
	return &FillBlankMode{sentences: sentences}
}

func (m *FillBlankMode) Type() string       { return TypeFillBlank }
func (m *FillBlankMode) MinWords() int      { return 1 }
func (m *FillBlankMode) QuestionLimit() int { return 0 }

// FilterCandidates keeps short phrases only; anything longer than three words
// won't read naturally inside a sentence blank.
func (m *FillBlankMode) FilterCandidates(words []models.WordRecord) []models.WordRecord {
	var out []models.WordRecord
	for _, w := range words {
		if len(strings.Fields(w.Spanish)) <= 3 {
			out = append(out, w)
		}
	}
	return out
}

// BuildQuestion fetches a sentence containing the word and blanks it out
func (m *FillBlankMode) BuildQuestion(ctx context.Context, word models.WordRecord, _ []models.WordRecord) (*Question, error) {
	sentence, err := m.sentences.SearchExample(ctx, word.Spanish)
	if err != nil {
		return nil, err
	}

	blanked, ok := blankOut(sentence, word.Spanish)
	if !ok {
		return nil, fmt.Errorf("sentence does not contain %q", word.Spanish)
	}

	return &Question{
		Word:     word,
		Prompt:   word.English,
		Answer:   NormalizeAnswer(word.Spanish),
		Sentence: blanked,
	}, nil
}

func (m *FillBlankMode) CheckAnswer(q *Question, answer string) bool {
	return NormalizeAnswer(answer) == q.Answer
}

// blankOut replaces the first case-insensitive occurrence of word with "____"
func blankOut(sentence, word string) (string, bool) {
	idx := strings.Index(strings.ToLower(sentence), strings.ToLower(word))
	if idx < 0 {
		return sentence, false
	}
	return sentence[:idx] + "____" + sentence[idx+len(word):], true
}
