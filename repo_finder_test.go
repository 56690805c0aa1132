package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/go-github/v58/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	archivedPageJSON = `{
		"total_count": 2,
		"incomplete_results": false,
		"items": [
			{"full_name": "a/b", "name": "b", "owner": {"login": "a"}, "html_url": "https://github.com/a/b", "archived": true},
			{"full_name": "c/d", "name": "d", "owner": {"login": "c"}, "html_url": "https://github.com/c/d", "archived": false, "stargazers_count": 7, "language": "Go", "description": "a test repo"}
		]
	}`

	emptySearchJSON = `{"total_count": 0, "incomplete_results": false, "items": []}`
)

func TestFindRandomRepoFiltersArchived(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, archivedPageJSON)
	})

	// Any seed must land on c/d: the archived entry is filtered before the
	// uniform pick.
	for seed := int64(0); seed < 10; seed++ {
		finder := newTestRepoFinder(t, mux, seed)
		repo := finder.FindRandomRepo(context.Background())

		require.NotNil(t, repo, "seed %d", seed)
		assert.Equal(t, "c/d", repo.FullName)
		assert.False(t, repo.Archived)
	}
}

func TestFindRandomRepoFallsThroughToListing(t *testing.T) {
	var searchCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		searchCalls++
		writeJSON(w, emptySearchJSON)
	})
	mux.HandleFunc("/repositories", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("since"))
		writeJSON(w, `[
			{"full_name": "p/p", "name": "p", "owner": {"login": "p"}, "html_url": "https://github.com/p/p", "private": true},
			{"full_name": "f/f", "name": "f", "owner": {"login": "f"}, "html_url": "https://github.com/f/f", "fork": true},
			{"full_name": "x/x", "name": "x", "owner": {"login": "x"}, "html_url": "https://github.com/x/x", "archived": true},
			{"full_name": "ok/ok", "name": "ok", "owner": {"login": "ok"}, "html_url": "https://github.com/ok/ok"}
		]`)
	})

	finder := newTestRepoFinder(t, mux, 1)
	repo := finder.FindRandomRepo(context.Background())

	require.NotNil(t, repo)
	assert.Equal(t, "ok/ok", repo.FullName)
	assert.False(t, repo.Private)
	assert.False(t, repo.Fork)
	assert.False(t, repo.Archived)
	assert.Equal(t, testConfig().MaxSearchAttempts, searchCalls,
		"date search should exhaust its attempt budget before falling through")
}

func TestFindRandomRepoPopularFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if strings.Contains(q, "stars:10..1000") {
			writeJSON(w, `{
				"total_count": 1,
				"incomplete_results": false,
				"items": [{"full_name": "pop/ular", "name": "ular", "owner": {"login": "pop"}, "html_url": "https://github.com/pop/ular", "stargazers_count": 321}]
			}`)
			return
		}
		writeJSON(w, emptySearchJSON)
	})
	mux.HandleFunc("/repositories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})

	finder := newTestRepoFinder(t, mux, 2)
	repo := finder.FindRandomRepo(context.Background())

	require.NotNil(t, repo)
	assert.Equal(t, "pop/ular", repo.FullName)
	assert.Equal(t, 321, repo.Stars)
}

func TestFindRandomRepoAllStrategiesEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, emptySearchJSON)
	})
	mux.HandleFunc("/repositories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `[]`)
	})

	finder := newTestRepoFinder(t, mux, 3)
	assert.Nil(t, finder.FindRandomRepo(context.Background()))
}

func TestFindRandomRepoSurvivesAPIFailures(t *testing.T) {
	var searchCalls, listCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		searchCalls++
		w.Header().Set("X-Ratelimit-Limit", "60")
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.Header().Set("X-Ratelimit-Reset", fmt.Sprint(time.Now().Add(time.Hour).Unix()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	})
	mux.HandleFunc("/repositories", func(w http.ResponseWriter, r *http.Request) {
		listCalls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "boom"}`))
	})

	finder := newTestRepoFinder(t, mux, 4)
	repo := finder.FindRandomRepo(context.Background())

	// Failed calls skip the attempt but still consume the budget; the
	// whole pipeline collapses to absence without raising anything.
	assert.Nil(t, repo)
	cfg := testConfig()
	assert.Equal(t, cfg.MaxSearchAttempts+1, searchCalls,
		"date search attempts plus one popular search")
	assert.Equal(t, cfg.MaxFallbackAttempts, listCalls)
}

func TestPickActiveRepoFallsBackWhenAllArchived(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	page := []*github.Repository{
		{FullName: github.String("a/a"), Archived: github.Bool(true)},
		{FullName: github.String("b/b"), Archived: github.Bool(true)},
	}

	repo, ok := pickActiveRepo(rng, page)
	require.True(t, ok, "an all-archived page should still yield a candidate")
	assert.True(t, repo.Archived)
}

func TestPickPublicSourceRepoPrefersClean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	page := []*github.Repository{
		{FullName: github.String("priv/priv"), Private: github.Bool(true)},
		{FullName: github.String("fork/fork"), Fork: github.Bool(true)},
		{FullName: github.String("clean/clean")},
	}

	for i := 0; i < 20; i++ {
		repo, ok := pickPublicSourceRepo(rng, page)
		require.True(t, ok)
		assert.Equal(t, "clean/clean", repo.FullName)
	}
}

func TestExtractRepoFallbacks(t *testing.T) {
	repo := extractRepo(&github.Repository{
		Owner: &github.User{Login: github.String("owner")},
		Name:  github.String("repo"),
	})

	assert.Equal(t, "owner/repo", repo.FullName)
	assert.Equal(t, "https://github.com/owner/repo", repo.HTMLURL)
}

func TestExtractRepoNormalizesURL(t *testing.T) {
	repo := extractRepo(&github.Repository{
		FullName: github.String("o/r"),
		HTMLURL:  github.String("http://github.com/o/r"),
	})

	assert.Equal(t, "https://github.com/o/r", repo.HTMLURL)
}
