package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/example/espabot/pkg/models"
)

var pronouns = []string{"yo", "tú", "él/ella", "nosotros", "vosotros", "ellos"}

var presentEndings = map[string][]string{
	"ar": {"o", "as", "a", "amos", "áis", "an"},
	"er": {"o", "es", "e", "emos", "éis", "en"},
	"ir": {"o", "es", "e", "imos", "ís", "en"},
}

// LikelyVerb reports whether the Spanish text looks like an infinitive verb:
// a single token ending in -ar/-er/-ir, optionally reflexive (-se).
func LikelyVerb(spanish string) bool {
	word := strings.ToLower(strings.TrimSpace(spanish))
	if strings.ContainsAny(word, " \t") {
		return false
	}
	word = strings.TrimSuffix(word, "se")
	if len(word) < 4 {
		return false
	}
	ending := word[len(word)-2:]
	_, ok := presentEndings[ending]
	return ok
}

// ConjugateRegular returns the regular present-tense form of an infinitive
// for the pronoun at the given index. Irregular verbs conjugate wrong here;
// the game treats every candidate as regular.
func ConjugateRegular(infinitive string, pronounIdx int) (string, error) {
	word := strings.ToLower(strings.TrimSpace(infinitive))
	word = strings.TrimSuffix(word, "se")
	if len(word) < 3 {
		return "", fmt.Errorf("%q is too short to conjugate", infinitive)
	}
	if pronounIdx < 0 || pronounIdx >= len(pronouns) {
		return "", fmt.Errorf("pronoun index %d out of range", pronounIdx)
	}

	ending := word[len(word)-2:]
	endings, ok := presentEndings[ending]
	if !ok {
		return "", fmt.Errorf("%q is not an -ar/-er/-ir verb", infinitive)
	}

	stem := word[:len(word)-2]
	return stem + endings[pronounIdx], nil
}

// ConjugationMode quizzes present-tense forms of likely verbs, ten questions
// per game
type ConjugationMode struct {
	rnd *rand.Rand
}

// NewConjugationMode creates the conjugation game mode
func NewConjugationMode() *ConjugationMode {
	return &ConjugationMode{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *ConjugationMode) Type() string       { return TypeConjugation }
func (m *ConjugationMode) MinWords() int      { return 1 }
func (m *ConjugationMode) QuestionLimit() int { return ConjugationQuestionCount }

// FilterCandidates keeps words that pass the verb-likelihood test
func (m *ConjugationMode) FilterCandidates(words []models.WordRecord) []models.WordRecord {
	var out []models.WordRecord
	for _, w := range words {
		if LikelyVerb(w.Spanish) {
			out = append(out, w)
		}
	}
	return out
}

// BuildQuestion asks for one present-tense form of the verb
func (m *ConjugationMode) BuildQuestion(_ context.Context, word models.WordRecord, _ []models.WordRecord) (*Question, error) {
	idx := m.rnd.Intn(len(pronouns))
	form, err := ConjugateRegular(word.Spanish, idx)
	if err != nil {
		return nil, err
	}

	return &Question{
		Word:   word,
		Prompt: fmt.Sprintf("%s (%s)", word.Spanish, pronouns[idx]),
		Answer: NormalizeAnswer(form),
	}, nil
}

func (m *ConjugationMode) CheckAnswer(q *Question, answer string) bool {
	return NormalizeAnswer(answer) == q.Answer
}
