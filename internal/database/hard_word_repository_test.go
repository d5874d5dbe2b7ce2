package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardWordToggle(t *testing.T) {
	setupTestDB(t)
	repo := NewHardWordRepository()

	flagged, err := repo.Exists("difícil", "difficult")
	require.NoError(t, err)
	assert.False(t, flagged)

	flagged, err = repo.Toggle("difícil", "difficult")
	require.NoError(t, err)
	assert.True(t, flagged)

	flagged, err = repo.Exists("difícil", "difficult")
	require.NoError(t, err)
	assert.True(t, flagged)

	// Second toggle unflags
	flagged, err = repo.Toggle("difícil", "difficult")
	require.NoError(t, err)
	assert.False(t, flagged)

	flagged, err = repo.Exists("difícil", "difficult")
	require.NoError(t, err)
	assert.False(t, flagged)
}

func TestHardWordGetAll(t *testing.T) {
	setupTestDB(t)
	repo := NewHardWordRepository()

	_, err := repo.Toggle("difícil", "difficult")
	require.NoError(t, err)
	_, err = repo.Toggle("fácil", "easy")
	require.NoError(t, err)

	words, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, words, 2)
}

func TestHardWordPairsAreDistinct(t *testing.T) {
	setupTestDB(t)
	repo := NewHardWordRepository()

	_, err := repo.Toggle("banco", "bank")
	require.NoError(t, err)

	// Same spanish, different english is a separate flag
	flagged, err := repo.Exists("banco", "bench")
	require.NoError(t, err)
	assert.False(t, flagged)
}
