package spaced_repetition

import (
	"testing"
	"time"

	"github.com/example/espabot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeExposureLevel(t *testing.T) {
	tests := []struct {
		name    string
		studied int
		correct int
		want    string
	}{
		{"unstudied", 0, 0, models.ExposureNew},
		{"single correct answer", 1, 1, models.ExposureLearning},
		{"two answers low accuracy", 2, 0, models.ExposureLearning},
		{"two answers decent accuracy", 2, 2, models.ExposureFamiliar},
		{"three answers good accuracy", 3, 3, models.ExposureFamiliar},
		{"four answers high accuracy", 4, 4, models.ExposureMastered},
		{"four answers medium accuracy", 4, 3, models.ExposureFamiliar},
		// Many studies can't compensate for low accuracy
		{"five answers accuracy 0.4", 5, 2, models.ExposureLearning},
		{"ten answers accuracy 0.7", 10, 7, models.ExposureFamiliar},
		{"ten answers accuracy 0.8", 10, 8, models.ExposureMastered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeExposureLevel(tt.studied, tt.correct))
		})
	}
}

func TestUpdateExposureCounters(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	word := models.WordRecord{ID: 1, Spanish: "comer", English: "to eat", TimesStudied: 3, TimesCorrect: 2}

	update := UpdateExposure(word, true, "matching", now)

	assert.Equal(t, 4, update.Word.TimesStudied)
	assert.Equal(t, 3, update.Word.TimesCorrect)
	require.NotNil(t, update.Word.LastStudied)
	assert.Equal(t, now, *update.Word.LastStudied)
	assert.Equal(t, models.GameScore{Correct: 1, Total: 1}, update.Word.GamePerformance["matching"])

	// The input record stays untouched
	assert.Equal(t, 3, word.TimesStudied)
}

func TestUpdateExposureIncorrectAnswer(t *testing.T) {
	word := models.WordRecord{ID: 2, Spanish: "beber", English: "to drink", TimesStudied: 1, TimesCorrect: 1,
		GamePerformance: models.GamePerformance{"conjugation": {Correct: 1, Total: 1}}}

	update := UpdateExposure(word, false, "conjugation", time.Now())

	assert.Equal(t, 2, update.Word.TimesStudied)
	assert.Equal(t, 1, update.Word.TimesCorrect)
	assert.Equal(t, models.GameScore{Correct: 1, Total: 2}, update.Word.GamePerformance["conjugation"])
}

func TestUpdateExposureFirstStudyIsLearning(t *testing.T) {
	word := models.WordRecord{ID: 3, Spanish: "sol", English: "sun"}

	update := UpdateExposure(word, true, "matching", time.Now())

	// One correct answer is not mastery: timesStudied(1) < 2
	assert.Equal(t, models.ExposureLearning, update.NewLevel)
	assert.Equal(t, models.ExposureNew, update.PreviousLevel)
	assert.True(t, update.HasLeveledUp)
}

func TestUpdateExposureLowAccuracyStaysLearning(t *testing.T) {
	// accuracy 0.4 keeps the word at learning despite timesStudied >= 4
	word := models.WordRecord{ID: 4, Spanish: "luna", English: "moon",
		ExposureLevel: models.ExposureLearning, TimesStudied: 4, TimesCorrect: 2}

	update := UpdateExposure(word, false, "fill_in_blank", time.Now())

	assert.Equal(t, 5, update.Word.TimesStudied)
	assert.Equal(t, 2, update.Word.TimesCorrect)
	assert.Equal(t, models.ExposureLearning, update.NewLevel)
	assert.False(t, update.HasLeveledUp)
}

func TestUpdateExposureKnownIsSticky(t *testing.T) {
	word := models.WordRecord{ID: 5, Spanish: "agua", English: "water",
		ExposureLevel: models.ExposureKnown, TimesStudied: 10, TimesCorrect: 2}

	for i := 0; i < 5; i++ {
		update := UpdateExposure(word, false, "matching", time.Now())
		word = update.Word

		assert.Equal(t, models.ExposureKnown, word.ExposureLevel)
		assert.False(t, update.HasLeveledUp)
	}
	// Counters still accumulate for history
	assert.Equal(t, 15, word.TimesStudied)
}

func TestUpdateExposureMasteredCanRegress(t *testing.T) {
	// Mastery is not sticky: enough wrong answers pull the recomputed
	// level back down, and that regression is never reported as a level-up.
	word := models.WordRecord{ID: 6, Spanish: "pan", English: "bread",
		ExposureLevel: models.ExposureMastered, TimesStudied: 5, TimesCorrect: 4}

	update := UpdateExposure(word, false, "matching", time.Now())

	assert.Equal(t, models.ExposureFamiliar, update.NewLevel)
	assert.Equal(t, models.ExposureMastered, update.PreviousLevel)
	assert.False(t, update.HasLeveledUp)
}

func TestUpdateExposureLevelUpOnlyOnStrictAdvance(t *testing.T) {
	word := models.WordRecord{ID: 7, Spanish: "vino", English: "wine",
		ExposureLevel: models.ExposureFamiliar, TimesStudied: 3, TimesCorrect: 3}

	update := UpdateExposure(word, true, "matching", time.Now())
	assert.Equal(t, models.ExposureMastered, update.NewLevel)
	assert.True(t, update.HasLeveledUp)

	// A further correct answer keeps mastered without another celebration
	next := UpdateExposure(update.Word, true, "matching", time.Now())
	assert.Equal(t, models.ExposureMastered, next.NewLevel)
	assert.False(t, next.HasLeveledUp)
}

func TestMarkWordAsKnown(t *testing.T) {
	word := models.WordRecord{ID: 8, Spanish: "mesa", English: "table", ExposureLevel: models.ExposureLearning}

	known := MarkWordAsKnown(word)

	assert.Equal(t, models.ExposureKnown, known.ExposureLevel)
	assert.Equal(t, models.ExposureLearning, word.ExposureLevel)
}

func TestRecordGameAnswerPersistsBestEffort(t *testing.T) {
	store := &flakyStore{fail: true}
	sched := NewScheduler(store)
	word := models.WordRecord{ID: 9, Spanish: "silla", English: "chair"}

	update, err := sched.RecordGameAnswer(word, true, "matching")

	require.Error(t, err)
	assert.Equal(t, 1, update.Word.TimesStudied)
	assert.Equal(t, models.ExposureLearning, update.NewLevel)
}
