package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	unscheduled := WordRecord{}
	assert.True(t, unscheduled.IsDue(now), "never-scheduled words are due")

	overdue := WordRecord{DueDate: &past}
	assert.True(t, overdue.IsDue(now))

	exact := WordRecord{DueDate: &now}
	assert.True(t, exact.IsDue(now), "due exactly now counts as due")

	later := WordRecord{DueDate: &future}
	assert.False(t, later.IsDue(now))
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, float64(0), (&WordRecord{}).Accuracy())
	assert.Equal(t, 0.5, (&WordRecord{TimesStudied: 4, TimesCorrect: 2}).Accuracy())
	assert.Equal(t, float64(1), (&WordRecord{TimesStudied: 3, TimesCorrect: 3}).Accuracy())
}

func TestLevelDefaultsToNew(t *testing.T) {
	assert.Equal(t, ExposureNew, (&WordRecord{}).Level())
	assert.Equal(t, ExposureMastered, (&WordRecord{ExposureLevel: ExposureMastered}).Level())
}

func TestValidate(t *testing.T) {
	valid := WordRecord{Spanish: "hablar", English: "to speak", TimesStudied: 2, TimesCorrect: 1}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, (&WordRecord{English: "x"}).Validate(), ErrEmptySpanish)
	assert.ErrorIs(t, (&WordRecord{Spanish: " ", English: "x"}).Validate(), ErrEmptySpanish)
	assert.ErrorIs(t, (&WordRecord{Spanish: "x"}).Validate(), ErrEmptyEnglish)

	mismatch := WordRecord{Spanish: "x", English: "y", TimesStudied: 1, TimesCorrect: 2}
	assert.ErrorIs(t, mismatch.Validate(), ErrCounterMismatch)
}
