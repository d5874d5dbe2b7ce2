package wordsync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/example/espabot/internal/database"
	"github.com/example/espabot/pkg/models"
)

// Bootstrapper replaces the local vocabulary when the remote word list
// version changes
type Bootstrapper struct {
	words  *database.WordRepository
	meta   *database.MetaRepository
	client *http.Client
}

// NewBootstrapper creates a bootstrapper over the given repositories
func NewBootstrapper(words *database.WordRepository, meta *database.MetaRepository) *Bootstrapper {
	return &Bootstrapper{
		words:  words,
		meta:   meta,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchRemoteWordList downloads the bootstrap payload
func (b *Bootstrapper) FetchRemoteWordList(ctx context.Context, url string) (*models.RemoteWordList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build word list request: %v", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch word list: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("word list fetch returned status %d", resp.StatusCode)
	}

	var list models.RemoteWordList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %v", err)
	}
	return &list, nil
}

// Sync compares the remote version byte-for-byte against the stored one and,
// on any mismatch (including first run, when no local version exists), clears
// the vocabulary and bulk-inserts the remote words. No incremental diffing.
// Returns whether a replace happened.
func (b *Bootstrapper) Sync(remote *models.RemoteWordList) (bool, error) {
	localVersion, err := b.meta.Get(database.MetaWordListVersion)
	if err != nil {
		return false, err
	}

	if localVersion == remote.Version {
		return false, nil
	}

	words := make([]models.WordRecord, len(remote.Words))
	copy(words, remote.Words)
	for i := range words {
		// Store-local ids never come from the remote list
		words[i].ID = 0
		if words[i].FrequencyRank == 0 {
			words[i].FrequencyRank = models.UnknownFrequencyRank
		}
	}

	if err := b.words.ReplaceAll(words); err != nil {
		return false, fmt.Errorf("failed to replace vocabulary: %v", err)
	}
	if err := b.meta.Set(database.MetaWordListVersion, remote.Version); err != nil {
		return false, err
	}

	log.Printf("Replaced local vocabulary: version %q -> %q, %d words", localVersion, remote.Version, len(words))
	return true, nil
}
