package spaced_repetition

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/espabot/pkg/models"
)

// ErrNothingDue signals that no card in the active set is due for review.
// It is a normal outcome, not a failure: the caller shows an "all caught up"
// message instead of an error.
var ErrNothingDue = errors.New("no cards due for review")

// dueStore is the slice of the word repository the selector needs
type dueStore interface {
	WhereDueDateBelowOrEqual(t time.Time) ([]models.WordRecord, error)
}

// Selector picks the next due card from an active working set
type Selector struct {
	store dueStore
	rnd   *rand.Rand
}

// NewSelector creates a selector backed by the given store
func NewSelector(store dueStore) *Selector {
	return &Selector{
		store: store,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SelectNext returns a uniformly random due card from the active list.
// excludeID (0 for none) removes the just-shown card from the draw, unless it
// is the only due candidate, in which case it may be re-selected rather than
// locking the session up. Returns ErrNothingDue when no candidate remains.
func (s *Selector) SelectNext(active []models.WordRecord, excludeID int64) (models.WordRecord, error) {
	due, err := s.store.WhereDueDateBelowOrEqual(time.Now())
	if err != nil {
		return models.WordRecord{}, fmt.Errorf("failed to query due cards: %v", err)
	}

	activeIDs := make(map[int64]bool, len(active))
	for _, w := range active {
		activeIDs[w.ID] = true
	}

	var candidates []models.WordRecord
	for _, w := range due {
		if activeIDs[w.ID] {
			candidates = append(candidates, w)
		}
	}

	if excludeID != 0 {
		var rest []models.WordRecord
		for _, w := range candidates {
			if w.ID != excludeID {
				rest = append(rest, w)
			}
		}
		// Keep the excluded card only when it is the sole candidate
		if len(rest) > 0 {
			candidates = rest
		}
	}

	if len(candidates) == 0 {
		return models.WordRecord{}, ErrNothingDue
	}

	s.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	return candidates[0], nil
}
