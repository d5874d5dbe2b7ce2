package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/espabot/pkg/models"
)

// WordRepository handles database operations for vocabulary words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// Get returns a word by ID, or nil if it doesn't exist
func (r *WordRepository) Get(id int64) (*models.WordRecord, error) {
	var word models.WordRecord
	err := DB.Get(&word, "SELECT * FROM words WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// Put inserts the word when it has no ID yet, otherwise updates it in place.
// The assigned ID is returned and written back onto the record.
func (r *WordRepository) Put(word *models.WordRecord) (int64, error) {
	if err := word.Validate(); err != nil {
		return 0, err
	}

	if word.ID != 0 {
		_, err := DB.Exec(`
			UPDATE words SET
				spanish = $1,
				english = $2,
				notes = $3,
				category = $4,
				synonyms_spanish = $5,
				synonyms_english = $6,
				leitner_box = $7,
				last_reviewed = $8,
				due_date = $9,
				exposure_level = $10,
				times_studied = $11,
				times_correct = $12,
				last_studied = $13,
				game_performance = $14,
				frequency_rank = $15,
				source = $16,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = $17`,
			word.Spanish,
			word.English,
			word.Notes,
			word.Category,
			word.SynonymsSpanish,
			word.SynonymsEnglish,
			word.LeitnerBox,
			word.LastReviewed,
			word.DueDate,
			word.Level(),
			word.TimesStudied,
			word.TimesCorrect,
			word.LastStudied,
			word.GamePerformance,
			word.FrequencyRank,
			word.Source,
			word.ID,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to update word: %v", err)
		}
		return word.ID, nil
	}

	result, err := DB.Exec(`
		INSERT INTO words (
			spanish, english, notes, category, synonyms_spanish, synonyms_english,
			leitner_box, last_reviewed, due_date,
			exposure_level, times_studied, times_correct, last_studied, game_performance,
			frequency_rank, source, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		word.Spanish,
		word.English,
		word.Notes,
		word.Category,
		word.SynonymsSpanish,
		word.SynonymsEnglish,
		word.LeitnerBox,
		word.LastReviewed,
		word.DueDate,
		word.Level(),
		word.TimesStudied,
		word.TimesCorrect,
		word.LastStudied,
		word.GamePerformance,
		word.FrequencyRank,
		word.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id

	return id, nil
}

// Delete removes a word
func (r *WordRepository) Delete(id int64) error {
	_, err := DB.Exec("DELETE FROM words WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}

// BulkPut inserts or updates a batch of words inside a single transaction
func (r *WordRepository) BulkPut(words []models.WordRecord) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	for i := range words {
		word := &words[i]
		if err := word.Validate(); err != nil {
			tx.Rollback()
			return fmt.Errorf("word %q: %v", word.Spanish, err)
		}
		if word.ID != 0 {
			_, err = tx.Exec(`
				UPDATE words SET
					spanish = $1, english = $2, notes = $3, category = $4,
					synonyms_spanish = $5, synonyms_english = $6,
					leitner_box = $7, last_reviewed = $8, due_date = $9,
					exposure_level = $10, times_studied = $11, times_correct = $12,
					last_studied = $13, game_performance = $14,
					frequency_rank = $15, source = $16,
					updated_at = CURRENT_TIMESTAMP
				WHERE id = $17`,
				word.Spanish, word.English, word.Notes, word.Category,
				word.SynonymsSpanish, word.SynonymsEnglish,
				word.LeitnerBox, word.LastReviewed, word.DueDate,
				word.Level(), word.TimesStudied, word.TimesCorrect,
				word.LastStudied, word.GamePerformance,
				word.FrequencyRank, word.Source, word.ID,
			)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to update word %q: %v", word.Spanish, err)
			}
			continue
		}

		result, err := tx.Exec(`
			INSERT INTO words (
				spanish, english, notes, category, synonyms_spanish, synonyms_english,
				leitner_box, last_reviewed, due_date,
				exposure_level, times_studied, times_correct, last_studied, game_performance,
				frequency_rank, source, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			word.Spanish, word.English, word.Notes, word.Category,
			word.SynonymsSpanish, word.SynonymsEnglish,
			word.LeitnerBox, word.LastReviewed, word.DueDate,
			word.Level(), word.TimesStudied, word.TimesCorrect,
			word.LastStudied, word.GamePerformance,
			word.FrequencyRank, word.Source,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert word %q: %v", word.Spanish, err)
		}
		if id, err := result.LastInsertId(); err == nil {
			word.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bulk put: %v", err)
	}
	return nil
}

// ToArray returns the full vocabulary
func (r *WordRepository) ToArray() ([]models.WordRecord, error) {
	var words []models.WordRecord
	err := DB.Select(&words, "SELECT * FROM words ORDER BY spanish")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// WhereDueDateBelowOrEqual returns words due at or before the given time.
// Words that were never scheduled (NULL due_date) are treated as due.
func (r *WordRepository) WhereDueDateBelowOrEqual(t time.Time) ([]models.WordRecord, error) {
	var words []models.WordRecord
	err := DB.Select(&words, `
		SELECT * FROM words
		WHERE due_date IS NULL OR due_date <= $1
		ORDER BY due_date ASC
	`, t)
	if err != nil {
		return nil, fmt.Errorf("failed to get due words: %v", err)
	}
	return words, nil
}

// ReplaceAll clears the vocabulary and inserts the given words in one
// transaction. Used by the bootstrap sync when the remote version changes.
func (r *WordRepository) ReplaceAll(words []models.WordRecord) error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	if _, err := tx.Exec("DELETE FROM words"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear words: %v", err)
	}

	for i := range words {
		word := &words[i]
		if err := word.Validate(); err != nil {
			tx.Rollback()
			return fmt.Errorf("word %q: %v", word.Spanish, err)
		}
		result, err := tx.Exec(`
			INSERT INTO words (
				spanish, english, notes, category, synonyms_spanish, synonyms_english,
				leitner_box, last_reviewed, due_date,
				exposure_level, times_studied, times_correct, last_studied, game_performance,
				frequency_rank, source, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
			word.Spanish, word.English, word.Notes, word.Category,
			word.SynonymsSpanish, word.SynonymsEnglish,
			word.LeitnerBox, word.LastReviewed, word.DueDate,
			word.Level(), word.TimesStudied, word.TimesCorrect,
			word.LastStudied, word.GamePerformance,
			word.FrequencyRank, word.Source,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert word %q: %v", word.Spanish, err)
		}
		if id, err := result.LastInsertId(); err == nil {
			word.ID = id
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace: %v", err)
	}
	return nil
}

// SearchWords searches for words by pattern matching on either side of the pair
func (r *WordRepository) SearchWords(query string) ([]models.WordRecord, error) {
	var words []models.WordRecord
	pattern := "%" + query + "%"
	err := DB.Select(&words, `
		SELECT * FROM words
		WHERE LOWER(spanish) LIKE LOWER($1) OR LOWER(english) LIKE LOWER($2)
		ORDER BY spanish
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search words: %v", err)
	}
	return words, nil
}

// Count returns the total number of stored words
func (r *WordRepository) Count() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM words")
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %v", err)
	}
	return count, nil
}
