package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/espabot/pkg/models"
)

// IncompleteWordRepository handles database operations for extracted words
// that still need a translation
type IncompleteWordRepository struct{}

// NewIncompleteWordRepository creates a new repository instance
func NewIncompleteWordRepository() *IncompleteWordRepository {
	return &IncompleteWordRepository{}
}

// Create inserts a new incomplete word
func (r *IncompleteWordRepository) Create(word *models.IncompleteWordRecord) error {
	if strings.TrimSpace(word.Spanish) == "" {
		return models.ErrEmptySpanish
	}
	if word.Status == "" {
		word.Status = models.StatusNeedsTranslation
	}

	result, err := DB.Exec(`
		INSERT INTO incomplete_words (spanish, source_text, source_date, category, status, extracted_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)`,
		word.Spanish, word.SourceText, word.SourceDate, word.Category, word.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create incomplete word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id
	return nil
}

// GetAll returns all incomplete words, oldest first
func (r *IncompleteWordRepository) GetAll() ([]models.IncompleteWordRecord, error) {
	var words []models.IncompleteWordRecord
	err := DB.Select(&words, "SELECT * FROM incomplete_words ORDER BY extracted_at ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to get incomplete words: %v", err)
	}
	return words, nil
}

// Delete removes an incomplete word, used when the user rejects it
func (r *IncompleteWordRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM incomplete_words WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete incomplete word: %v", err)
	}
	return nil
}

// Promote turns an incomplete word into a full vocabulary word once its
// translation is known, then removes the incomplete record.
func (r *IncompleteWordRepository) Promote(id int64, english string) (*models.WordRecord, error) {
	var incomplete models.IncompleteWordRecord
	err := DB.Get(&incomplete, "SELECT * FROM incomplete_words WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("incomplete word %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get incomplete word: %v", err)
	}

	word := &models.WordRecord{
		Spanish:       incomplete.Spanish,
		English:       english,
		Category:      incomplete.Category,
		ExposureLevel: models.ExposureNew,
		FrequencyRank: models.UnknownFrequencyRank,
		Source:        models.SourceExtraction,
	}

	wordRepo := NewWordRepository()
	if _, err := wordRepo.Put(word); err != nil {
		return nil, fmt.Errorf("failed to promote incomplete word: %v", err)
	}

	if err := r.Delete(id); err != nil {
		return nil, err
	}

	return word, nil
}
