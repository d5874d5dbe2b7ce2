package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/example/espabot/pkg/models"
)

// Algorithm tags recorded on generated lists
const (
	AlgorithmShuffledExclusions = "shuffled_with_exclusions"
	AlgorithmNewWords           = "new_words"
	AlgorithmDailyMix           = "daily_mix"
	AlgorithmStruggling         = "struggling_accuracy_asc"
	AlgorithmMaintenance        = "maintenance_stale_first"
	AlgorithmHighFrequency      = "high_frequency_unlearned"
)

// WordList is a bounded candidate list produced for one sitting of a game mode
type WordList struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Words         []models.WordRecord `json:"words"`
	AlgorithmUsed string              `json:"algorithm_used"`
	// Remaining counts the studiable words left outside this list, so the
	// caller can tell when the session has exhausted the vocabulary.
	Remaining   int       `json:"remaining"`
	GeneratedAt time.Time `json:"generated_at"`
}

var rnd = rand.New(rand.NewSource(time.Now().UnixNano()))

// studiable filters out words retired from active study ("known") and
// deduplicates by ID. Every generator starts from this set.
func studiable(words []models.WordRecord) []models.WordRecord {
	seen := make(map[int64]bool, len(words))
	out := make([]models.WordRecord, 0, len(words))
	for _, w := range words {
		if w.Level() == models.ExposureKnown {
			continue
		}
		if w.ID != 0 && seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}

func shuffle(words []models.WordRecord) {
	rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}

func truncate(words []models.WordRecord, count int) []models.WordRecord {
	if count >= 0 && len(words) > count {
		return words[:count]
	}
	return words
}

// GenerateFlashcardsListWithExclusions builds a shuffled flashcard list that
// skips already-shown words. The exclusion set is owned by the caller: to
// guarantee no repeats within a sitting, accumulate the IDs of shown words
// into excludeIDs between calls. Remaining reports how many studiable words
// were left out, so zero means the next call will exhaust the vocabulary.
func GenerateFlashcardsListWithExclusions(words []models.WordRecord, maxWords int, excludeIDs map[int64]bool) WordList {
	pool := studiable(words)

	filtered := make([]models.WordRecord, 0, len(pool))
	for _, w := range pool {
		if excludeIDs[w.ID] {
			continue
		}
		filtered = append(filtered, w)
	}

	shuffle(filtered)
	picked := truncate(filtered, maxWords)

	return WordList{
		ID:            "flashcards",
		Name:          "Flashcards",
		Description:   "Shuffled studiable words, skipping ones already shown this session",
		Words:         picked,
		AlgorithmUsed: AlgorithmShuffledExclusions,
		Remaining:     len(filtered) - len(picked),
		GeneratedAt:   time.Now(),
	}
}

// GenerateNewWordsList returns unstudied words, most common first
func GenerateNewWordsList(words []models.WordRecord, count int) WordList {
	pool := studiable(words)

	var fresh []models.WordRecord
	for _, w := range pool {
		if w.TimesStudied == 0 {
			fresh = append(fresh, w)
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].FrequencyRank < fresh[j].FrequencyRank
	})

	picked := truncate(fresh, count)
	return WordList{
		ID:            "new_words",
		Name:          "New Words",
		Description:   "Words never studied, most common first",
		Words:         picked,
		AlgorithmUsed: AlgorithmNewWords,
		Remaining:     len(fresh) - len(picked),
		GeneratedAt:   time.Now(),
	}
}

// GetStrugglingWords returns studied words ordered by accuracy, worst first
func GetStrugglingWords(words []models.WordRecord, count int) WordList {
	pool := studiable(words)

	var studied []models.WordRecord
	for _, w := range pool {
		if w.TimesStudied > 0 {
			studied = append(studied, w)
		}
	}
	sort.SliceStable(studied, func(i, j int) bool {
		return studied[i].Accuracy() < studied[j].Accuracy()
	})

	picked := truncate(studied, count)
	return WordList{
		ID:            "struggling",
		Name:          "Struggling Words",
		Description:   "Studied words with the lowest accuracy",
		Words:         picked,
		AlgorithmUsed: AlgorithmStruggling,
		Remaining:     len(studied) - len(picked),
		GeneratedAt:   time.Now(),
	}
}

// GetMaintenanceWords returns mastered words ordered by staleness, so the
// longest-unseen ones come back first. This is the one generator that serves
// mastered words on purpose; "known" words stay excluded even here.
func GetMaintenanceWords(words []models.WordRecord, count int) WordList {
	pool := studiable(words)

	var mastered []models.WordRecord
	for _, w := range pool {
		if w.Level() == models.ExposureMastered {
			mastered = append(mastered, w)
		}
	}
	sort.SliceStable(mastered, func(i, j int) bool {
		// Never-studied timestamps sort as oldest
		ti, tj := mastered[i].LastStudied, mastered[j].LastStudied
		if ti == nil {
			return tj != nil
		}
		if tj == nil {
			return false
		}
		return ti.Before(*tj)
	})

	picked := truncate(mastered, count)
	return WordList{
		ID:            "maintenance",
		Name:          "Maintenance",
		Description:   "Mastered words that have not been seen for the longest",
		Words:         picked,
		AlgorithmUsed: AlgorithmMaintenance,
		Remaining:     len(mastered) - len(picked),
		GeneratedAt:   time.Now(),
	}
}

// GetHighFrequencyUnlearned returns the most common words not yet mastered
func GetHighFrequencyUnlearned(words []models.WordRecord, count int) WordList {
	pool := studiable(words)

	var unlearned []models.WordRecord
	for _, w := range pool {
		if w.Level() == models.ExposureMastered {
			continue
		}
		if w.FrequencyRank >= models.UnknownFrequencyRank {
			continue
		}
		unlearned = append(unlearned, w)
	}
	sort.SliceStable(unlearned, func(i, j int) bool {
		return unlearned[i].FrequencyRank < unlearned[j].FrequencyRank
	})

	picked := truncate(unlearned, count)
	return WordList{
		ID:            "high_frequency",
		Name:          "High Frequency",
		Description:   "Most common words not yet mastered",
		Words:         picked,
		AlgorithmUsed: AlgorithmHighFrequency,
		Remaining:     len(unlearned) - len(picked),
		GeneratedAt:   time.Now(),
	}
}

// GenerateDailyMix blends new, struggling, and maintenance words into one
// shuffled session: a third of each, topped up with new words when a bucket
// runs short.
func GenerateDailyMix(words []models.WordRecord, count int) WordList {
	if count <= 0 {
		count = 12
	}
	third := count / 3
	if third == 0 {
		third = 1
	}

	picked := make([]models.WordRecord, 0, count)
	seen := make(map[int64]bool, count)
	add := func(list []models.WordRecord, limit int) {
		for _, w := range list {
			if len(picked) >= count || limit == 0 {
				return
			}
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			picked = append(picked, w)
			limit--
		}
	}

	add(GenerateNewWordsList(words, -1).Words, third)
	add(GetStrugglingWords(words, -1).Words, third)
	add(GetMaintenanceWords(words, -1).Words, third)
	// Top up with whatever new words remain
	add(GenerateNewWordsList(words, -1).Words, count-len(picked))

	shuffle(picked)

	remaining := len(studiable(words)) - len(picked)
	return WordList{
		ID:            "daily_mix",
		Name:          "Daily Mix",
		Description:   "A blend of new, struggling, and maintenance words",
		Words:         picked,
		AlgorithmUsed: AlgorithmDailyMix,
		Remaining:     remaining,
		GeneratedAt:   time.Now(),
	}
}
