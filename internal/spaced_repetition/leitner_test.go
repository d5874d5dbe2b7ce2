package spaced_repetition

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/espabot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBox(t *testing.T) {
	for box := 0; box <= models.MaxLeitnerBox; box++ {
		expected := box + 1
		if expected > models.MaxLeitnerBox {
			expected = models.MaxLeitnerBox
		}
		assert.Equal(t, expected, NextBox(box, true), "correct answer from box %d", box)
		assert.Equal(t, 1, NextBox(box, false), "incorrect answer from box %d", box)
	}
}

func TestScheduleAfterAnswerIntervals(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for box := 0; box <= models.MaxLeitnerBox; box++ {
		word := models.WordRecord{ID: 1, Spanish: "hablar", English: "to speak", LeitnerBox: box}
		updated := ScheduleAfterAnswer(word, true, now)

		require.NotNil(t, updated.LastReviewed)
		require.NotNil(t, updated.DueDate)
		assert.Equal(t, now, *updated.LastReviewed)

		wantMillis := int64(ScheduleDays[updated.LeitnerBox]) * 86400000
		assert.Equal(t, wantMillis, updated.DueDate.Sub(*updated.LastReviewed).Milliseconds(),
			"interval for box %d", updated.LeitnerBox)
	}
}

func TestScheduleAfterAnswerScenario(t *testing.T) {
	// Box 3 answered correctly moves to box 4, due in 8 days
	t1 := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	word := models.WordRecord{ID: 7, Spanish: "correr", English: "to run", LeitnerBox: 3}

	updated := ScheduleAfterAnswer(word, true, t1)

	assert.Equal(t, 4, updated.LeitnerBox)
	assert.Equal(t, t1.Add(8*24*time.Hour), *updated.DueDate)
}

func TestScheduleAfterAnswerIncorrectResets(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	word := models.WordRecord{ID: 2, Spanish: "perro", English: "dog", LeitnerBox: 7}

	updated := ScheduleAfterAnswer(word, false, now)

	// Reset goes to box 1, not box 0: the word has been seen
	assert.Equal(t, 1, updated.LeitnerBox)
	assert.Equal(t, now.Add(24*time.Hour), *updated.DueDate)
}

func TestScheduleAfterAnswerIsPure(t *testing.T) {
	word := models.WordRecord{ID: 3, Spanish: "gato", English: "cat", LeitnerBox: 2}

	ScheduleAfterAnswer(word, true, time.Now())

	assert.Equal(t, 2, word.LeitnerBox)
	assert.Nil(t, word.DueDate)
}

type flakyStore struct {
	fail  bool
	puts  int
	saved models.WordRecord
}

func (s *flakyStore) Put(word *models.WordRecord) (int64, error) {
	s.puts++
	if s.fail {
		return 0, fmt.Errorf("disk full")
	}
	s.saved = *word
	return word.ID, nil
}

func TestReviewAnswerPersists(t *testing.T) {
	store := &flakyStore{}
	sched := NewScheduler(store)
	word := models.WordRecord{ID: 4, Spanish: "casa", English: "house", LeitnerBox: 1}

	updated, err := sched.ReviewAnswer(word, true)

	require.NoError(t, err)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 2, store.saved.LeitnerBox)
	assert.Equal(t, 2, updated.LeitnerBox)
}

func TestReviewAnswerReturnsRecordOnPersistenceFailure(t *testing.T) {
	store := &flakyStore{fail: true}
	sched := NewScheduler(store)
	word := models.WordRecord{ID: 5, Spanish: "libro", English: "book", LeitnerBox: 3}

	updated, err := sched.ReviewAnswer(word, true)

	// The computed state comes back even when the write fails, and the
	// error tells the caller durability was lost. No retry happens.
	require.Error(t, err)
	assert.Equal(t, 4, updated.LeitnerBox)
	assert.Equal(t, 1, store.puts)
}
