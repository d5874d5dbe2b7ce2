package database

import (
	"database/sql"
	"fmt"
)

// Meta keys
const (
	MetaWordListVersion = "word_list_version"
)

// MetaRepository stores small key-value settings such as the version of the
// last bootstrapped word list
type MetaRepository struct{}

// NewMetaRepository creates a new repository instance
func NewMetaRepository() *MetaRepository {
	return &MetaRepository{}
}

// Get returns the value for a key, or "" when the key has never been set
func (r *MetaRepository) Get(key string) (string, error) {
	var value string
	err := DB.Get(&value, "SELECT value FROM meta WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get meta %q: %v", key, err)
	}
	return value, nil
}

// Set stores a value for a key, replacing any previous value
func (r *MetaRepository) Set(key, value string) error {
	_, err := DB.Exec(`
		INSERT INTO meta (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta %q: %v", key, err)
	}
	return nil
}
