package database

import (
	"database/sql"
	"fmt"

	"github.com/example/espabot/pkg/models"
)

// HardWordRepository handles database operations for user-flagged hard words
type HardWordRepository struct{}

// NewHardWordRepository creates a new repository instance
func NewHardWordRepository() *HardWordRepository {
	return &HardWordRepository{}
}

// Exists reports whether the pair is currently flagged
func (r *HardWordRepository) Exists(spanish, english string) (bool, error) {
	var id int64
	err := DB.Get(&id, "SELECT id FROM hard_words WHERE spanish = $1 AND english = $2", spanish, english)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check hard word: %v", err)
	}
	return true, nil
}

// Toggle flags the pair if it isn't flagged, unflags it otherwise.
// Returns whether the pair is flagged after the call.
func (r *HardWordRepository) Toggle(spanish, english string) (bool, error) {
	flagged, err := r.Exists(spanish, english)
	if err != nil {
		return false, err
	}

	if flagged {
		_, err = DB.Exec("DELETE FROM hard_words WHERE spanish = $1 AND english = $2", spanish, english)
		if err != nil {
			return false, fmt.Errorf("failed to unflag hard word: %v", err)
		}
		return false, nil
	}

	_, err = DB.Exec(`
		INSERT INTO hard_words (spanish, english, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)`, spanish, english)
	if err != nil {
		return false, fmt.Errorf("failed to flag hard word: %v", err)
	}
	return true, nil
}

// GetAll returns all flagged pairs
func (r *HardWordRepository) GetAll() ([]models.HardWord, error) {
	var words []models.HardWord
	err := DB.Select(&words, "SELECT * FROM hard_words ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to get hard words: %v", err)
	}
	return words, nil
}
