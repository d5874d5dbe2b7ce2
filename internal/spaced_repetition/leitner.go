package spaced_repetition

import (
	"log"
	"time"

	"github.com/example/espabot/pkg/models"
)

// ScheduleDays maps a Leitner box to its review interval in days
var ScheduleDays = [models.MaxLeitnerBox + 1]int{0, 1, 2, 4, 8, 16, 32, 90}

// NextBox returns the Leitner box after an answer. A correct answer moves the
// word up one box, capped at the top box; an incorrect answer resets to box 1,
// not 0, since the word has been seen.
func NextBox(box int, correct bool) int {
	if correct {
		if box >= models.MaxLeitnerBox {
			return models.MaxLeitnerBox
		}
		return box + 1
	}
	return 1
}

// ScheduleAfterAnswer computes the word's next Leitner state. Pure: the input
// record is not modified and no I/O happens here.
func ScheduleAfterAnswer(word models.WordRecord, correct bool, now time.Time) models.WordRecord {
	newBox := NextBox(word.LeitnerBox, correct)
	due := now.Add(time.Duration(ScheduleDays[newBox]) * 24 * time.Hour)

	word.LeitnerBox = newBox
	word.LastReviewed = &now
	word.DueDate = &due
	return word
}

// wordStore is the slice of the word repository the scheduler needs
type wordStore interface {
	Put(word *models.WordRecord) (int64, error)
}

// Scheduler applies Leitner transitions and persists them best-effort
type Scheduler struct {
	words wordStore
}

// NewScheduler creates a scheduler backed by the given word store
func NewScheduler(words wordStore) *Scheduler {
	return &Scheduler{words: words}
}

// ReviewAnswer advances the word's Leitner state and persists it. The updated
// record is always returned, even when the write fails: the returned error
// reports the persistence failure and callers decide whether to surface it.
// There is no retry; a failed write is logged and the session continues on the
// in-memory state.
func (s *Scheduler) ReviewAnswer(word models.WordRecord, correct bool) (models.WordRecord, error) {
	updated := ScheduleAfterAnswer(word, correct, time.Now())

	if _, err := s.words.Put(&updated); err != nil {
		log.Printf("Failed to persist review for word %d (%s): %v", word.ID, word.Spanish, err)
		return updated, err
	}
	return updated, nil
}
