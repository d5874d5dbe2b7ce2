package models

import (
	"strings"
	"time"
)

// Exposure levels ordered by mastery. "known" is set only by an explicit
// user action and is never recomputed away.
const (
	ExposureNew      = "new"
	ExposureLearning = "learning"
	ExposureFamiliar = "familiar"
	ExposureMastered = "mastered"
	ExposureKnown    = "known"
)

// Provenance tags for imported vocabulary
const (
	SourceScraped    = "scraped"
	SourceFrequency  = "frequency"
	SourceUserAdded  = "user_added"
	SourceExtraction = "extraction"
)

// MaxLeitnerBox is the highest Leitner box a word can reach
const MaxLeitnerBox = 7

// UnknownFrequencyRank is the sentinel rank for words without frequency data
const UnknownFrequencyRank = 99999

// WordRecord represents a Spanish vocabulary item together with both of its
// scheduling states: the legacy Leitner box fields and the newer exposure
// tracking fields. Either set may be unpopulated; neither implies the other.
type WordRecord struct {
	ID              int64      `json:"id" db:"id"`
	Spanish         string     `json:"spanish" db:"spanish"`
	English         string     `json:"english" db:"english"`
	Notes           string     `json:"notes" db:"notes"`
	Category        string     `json:"category" db:"category"`
	SynonymsSpanish StringList `json:"synonyms_spanish" db:"synonyms_spanish"`
	SynonymsEnglish StringList `json:"synonyms_english" db:"synonyms_english"`

	// Legacy Leitner scheduling fields. Box 0 means unseen. A nil DueDate
	// means the word is due now.
	LeitnerBox   int        `json:"leitner_box" db:"leitner_box"`
	LastReviewed *time.Time `json:"last_reviewed" db:"last_reviewed"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`

	// Exposure tracking fields
	ExposureLevel   string          `json:"exposure_level" db:"exposure_level"`
	TimesStudied    int             `json:"times_studied" db:"times_studied"`
	TimesCorrect    int             `json:"times_correct" db:"times_correct"`
	LastStudied     *time.Time      `json:"last_studied" db:"last_studied"`
	GamePerformance GamePerformance `json:"game_performance" db:"game_performance"`

	FrequencyRank int    `json:"frequency_rank" db:"frequency_rank"`
	Source        string `json:"source" db:"source"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsDue reports whether the word's Leitner review time has passed.
// Words that have never been scheduled are always due.
func (w *WordRecord) IsDue(now time.Time) bool {
	if w.DueDate == nil {
		return true
	}
	return !w.DueDate.After(now)
}

// Accuracy returns the fraction of studies answered correctly, 0 when unstudied
func (w *WordRecord) Accuracy() float64 {
	if w.TimesStudied == 0 {
		return 0
	}
	return float64(w.TimesCorrect) / float64(w.TimesStudied)
}

// Level returns the exposure level, defaulting to "new" for records that
// predate exposure tracking.
func (w *WordRecord) Level() string {
	if w.ExposureLevel == "" {
		return ExposureNew
	}
	return w.ExposureLevel
}

// Validate checks the invariants required of every stored word
func (w *WordRecord) Validate() error {
	if strings.TrimSpace(w.Spanish) == "" {
		return ErrEmptySpanish
	}
	if strings.TrimSpace(w.English) == "" {
		return ErrEmptyEnglish
	}
	if w.TimesCorrect > w.TimesStudied {
		return ErrCounterMismatch
	}
	return nil
}
