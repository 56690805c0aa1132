package main

import (
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v58/github"
	"github.com/stretchr/testify/require"
)

// newTestClient points a go-github client at a local test server so the
// strategies can be driven with scripted responses.
func newTestClient(t *testing.T, handler http.Handler) *github.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client
}

func testConfig() *Config {
	return &Config{
		MaxSearchAttempts:   3,
		MaxFallbackAttempts: 3,
		MaxIssueAttempts:    3,
		RequestTimeout:      5 * time.Second,
		RetryDelay:          0,
		IssueLanguage:       "python",
		LogLevel:            "error",
		LogFormat:           "text",
	}
}

func newTestRepoFinder(t *testing.T, handler http.Handler, seed int64) *RepoFinder {
	t.Helper()

	finder := NewRepoFinder(newTestClient(t, handler), rand.New(rand.NewSource(seed)), testConfig())
	finder.sleep = func(time.Duration) {}
	return finder
}

func newTestIssueFinder(t *testing.T, handler http.Handler, seed int64) *IssueFinder {
	t.Helper()

	client := newTestClient(t, handler)
	rng := rand.New(rand.NewSource(seed))
	repos := NewRepoFinder(client, rng, testConfig())
	repos.sleep = func(time.Duration) {}
	return NewIssueFinder(client, repos, rng, testConfig())
}

func createTestLabels(names []string) []*github.Label {
	labels := make([]*github.Label, len(names))
	for i, name := range names {
		labels[i] = &github.Label{Name: github.String(name)}
	}
	return labels
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
