package spaced_repetition

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/espabot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDueStore struct {
	due []models.WordRecord
	err error
}

func (s *stubDueStore) WhereDueDateBelowOrEqual(t time.Time) ([]models.WordRecord, error) {
	return s.due, s.err
}

func word(id int64, spanish string) models.WordRecord {
	return models.WordRecord{ID: id, Spanish: spanish, English: spanish + " (en)"}
}

func TestSelectNextReturnsDueCardFromActiveSet(t *testing.T) {
	store := &stubDueStore{due: []models.WordRecord{word(1, "uno"), word(2, "dos"), word(3, "tres")}}
	selector := NewSelector(store)
	active := []models.WordRecord{word(2, "dos")}

	picked, err := selector.SelectNext(active, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(2), picked.ID)
}

func TestSelectNextNeverReturnsExcludedWhenOthersExist(t *testing.T) {
	store := &stubDueStore{due: []models.WordRecord{word(1, "uno"), word(2, "dos")}}
	selector := NewSelector(store)
	active := []models.WordRecord{word(1, "uno"), word(2, "dos")}

	for i := 0; i < 50; i++ {
		picked, err := selector.SelectNext(active, 1)
		require.NoError(t, err)
		assert.NotEqual(t, int64(1), picked.ID)
	}
}

func TestSelectNextAllowsExcludedWhenSoleCandidate(t *testing.T) {
	// With only one due card, excluding it would lock the session up
	store := &stubDueStore{due: []models.WordRecord{word(1, "uno")}}
	selector := NewSelector(store)
	active := []models.WordRecord{word(1, "uno")}

	picked, err := selector.SelectNext(active, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), picked.ID)
}

func TestSelectNextEmptyActiveList(t *testing.T) {
	store := &stubDueStore{due: []models.WordRecord{word(1, "uno")}}
	selector := NewSelector(store)

	_, err := selector.SelectNext(nil, 0)

	assert.ErrorIs(t, err, ErrNothingDue)
}

func TestSelectNextNothingDue(t *testing.T) {
	store := &stubDueStore{}
	selector := NewSelector(store)
	active := []models.WordRecord{word(1, "uno")}

	_, err := selector.SelectNext(active, 0)

	assert.ErrorIs(t, err, ErrNothingDue)
}

func TestSelectNextStoreError(t *testing.T) {
	store := &stubDueStore{err: fmt.Errorf("connection lost")}
	selector := NewSelector(store)

	_, err := selector.SelectNext([]models.WordRecord{word(1, "uno")}, 0)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNothingDue)
}

func TestSelectNextCoversAllCandidates(t *testing.T) {
	due := []models.WordRecord{word(1, "uno"), word(2, "dos"), word(3, "tres"), word(4, "cuatro")}
	store := &stubDueStore{due: due}
	selector := NewSelector(store)

	seen := make(map[int64]bool)
	for i := 0; i < 200; i++ {
		picked, err := selector.SelectNext(due, 0)
		require.NoError(t, err)
		seen[picked.ID] = true
	}
	assert.Len(t, seen, 4, "every due card should eventually be selected")
}
