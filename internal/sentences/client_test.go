package sentences

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchExampleFindsMatchingSentence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "spa", r.URL.Query().Get("from"))
		assert.Equal(t, "perro", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"text":"Los gatos duermen."},{"text":"El Perro come mucho."}]}`))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL)
	sentence, err := c.SearchExample(context.Background(), "perro")

	require.NoError(t, err)
	// Case-insensitive containment; the first non-matching result is skipped
	assert.Equal(t, "El Perro come mucho.", sentence)
}

func TestSearchExampleNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"text":"Nada relevante."}]}`))
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL)
	_, err := c.SearchExample(context.Background(), "perro")

	assert.Error(t, err)
}

func TestSearchExampleBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewWithURL(srv.URL)
	_, err := c.SearchExample(context.Background(), "perro")

	assert.Error(t, err)
}

func TestSearchExampleCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewWithURL(srv.URL)
	_, err := c.SearchExample(ctx, "perro")

	assert.Error(t, err)
}
