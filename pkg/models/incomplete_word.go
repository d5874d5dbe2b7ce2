package models

import "time"

// StatusNeedsTranslation marks an extracted word awaiting its English side
const StatusNeedsTranslation = "needs_translation"

// IncompleteWordRecord is a vocabulary candidate produced by text extraction.
// It is promoted into a WordRecord once translated, or deleted if rejected.
type IncompleteWordRecord struct {
	ID          int64     `json:"id" db:"id"`
	Spanish     string    `json:"spanish" db:"spanish"`
	SourceText  string    `json:"source_text" db:"source_text"`
	SourceDate  string    `json:"source_date" db:"source_date"`
	Category    string    `json:"category" db:"category"`
	Status      string    `json:"status" db:"status"`
	ExtractedAt time.Time `json:"extracted_at" db:"extracted_at"`
}
