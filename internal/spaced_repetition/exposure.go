package spaced_repetition

import (
	"log"
	"time"

	"github.com/example/espabot/pkg/models"
)

// exposureOrder is the progression a word advances along. "known" sits outside
// of it: it is set only by an explicit user action and never recomputed.
var exposureOrder = []string{
	models.ExposureNew,
	models.ExposureLearning,
	models.ExposureFamiliar,
	models.ExposureMastered,
}

// levelIndex returns the position of a level in the progression, -1 for "known"
func levelIndex(level string) int {
	for i, l := range exposureOrder {
		if l == level {
			return i
		}
	}
	return -1
}

// ComputeExposureLevel derives the level from study count and accuracy.
// The thresholds are cumulative: a word must both have been studied enough
// times and hold the accuracy bar to advance. Because accuracy can drop with
// further incorrect answers, a recomputed level may be lower than the stored
// one; that regression is deliberate for everything below "known".
func ComputeExposureLevel(timesStudied, timesCorrect int) string {
	if timesStudied == 0 {
		return models.ExposureNew
	}
	accuracy := float64(timesCorrect) / float64(timesStudied)
	if timesStudied < 2 || accuracy < 0.5 {
		return models.ExposureLearning
	}
	if timesStudied < 4 || accuracy < 0.8 {
		return models.ExposureFamiliar
	}
	return models.ExposureMastered
}

// ExposureUpdate carries the outcome of one exposure transition
type ExposureUpdate struct {
	Word          models.WordRecord
	PreviousLevel string
	NewLevel      string
	// HasLeveledUp is true only when the word strictly advanced along the
	// new → learning → familiar → mastered progression. Regressions and
	// moves involving "known" never count.
	HasLeveledUp bool
}

// UpdateExposure computes the word's next exposure state after an answer in
// the given game mode. Pure: the input record is not modified.
func UpdateExposure(word models.WordRecord, correct bool, gameType string, now time.Time) ExposureUpdate {
	previous := word.Level()

	word.TimesStudied++
	if correct {
		word.TimesCorrect++
	}
	word.LastStudied = &now

	if word.GamePerformance == nil {
		word.GamePerformance = models.GamePerformance{}
	}
	score := word.GamePerformance[gameType]
	score.Total++
	if correct {
		score.Correct++
	}
	word.GamePerformance[gameType] = score

	// "known" is sticky: only MarkWordAsKnown sets it and nothing here
	// unsets it.
	if previous == models.ExposureKnown {
		word.ExposureLevel = models.ExposureKnown
		return ExposureUpdate{Word: word, PreviousLevel: previous, NewLevel: models.ExposureKnown}
	}

	next := ComputeExposureLevel(word.TimesStudied, word.TimesCorrect)
	word.ExposureLevel = next

	return ExposureUpdate{
		Word:          word,
		PreviousLevel: previous,
		NewLevel:      next,
		HasLeveledUp:  levelIndex(next) > levelIndex(previous),
	}
}

// MarkWordAsKnown permanently retires the word from active study
func MarkWordAsKnown(word models.WordRecord) models.WordRecord {
	word.ExposureLevel = models.ExposureKnown
	return word
}

// RecordGameAnswer applies an exposure transition and persists it best-effort,
// mirroring Scheduler.ReviewAnswer: the computed update is always returned and
// a failed write is only logged.
func (s *Scheduler) RecordGameAnswer(word models.WordRecord, correct bool, gameType string) (ExposureUpdate, error) {
	update := UpdateExposure(word, correct, gameType, time.Now())

	if _, err := s.words.Put(&update.Word); err != nil {
		log.Printf("Failed to persist %s answer for word %d (%s): %v", gameType, word.ID, word.Spanish, err)
		return update, err
	}
	return update, nil
}
