package sentences

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultAPIURL is the Tatoeba sentence search endpoint
const defaultAPIURL = "https://tatoeba.org/en/api_v0/search"

// Client looks up Spanish example sentences containing a given word
type Client struct {
	apiURL string
	client *http.Client
}

// New creates a sentence lookup client
func New() *Client {
	return &Client{
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithURL creates a client against a custom endpoint, used in tests
func NewWithURL(apiURL string) *Client {
	c := New()
	c.apiURL = apiURL
	return c
}

// searchResponse mirrors the slice of the Tatoeba payload we care about
type searchResponse struct {
	Results []struct {
		Text string `json:"text"`
	} `json:"results"`
}

// SearchExample returns a Spanish sentence containing the word, or an error
// when none is found. The context lets the caller abandon the lookup when the
// user exits the game mid-fetch.
func (c *Client) SearchExample(ctx context.Context, word string) (string, error) {
	params := url.Values{}
	params.Set("from", "spa")
	params.Set("query", word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sentence request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch example sentence: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sentence lookup returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode sentence response: %v", err)
	}

	lower := strings.ToLower(word)
	for _, result := range parsed.Results {
		if strings.Contains(strings.ToLower(result.Text), lower) {
			return result.Text, nil
		}
	}

	return "", fmt.Errorf("no example sentence found for %q", word)
}
