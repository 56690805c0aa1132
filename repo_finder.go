// Package main implements a small desktop utility that surfaces a random
// public GitHub repository or a random beginner-friendly issue. The GitHub
// search API cannot sample uniformly, so discovery runs an ordered list of
// strategies and takes the first one that yields a candidate.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/go-github/v58/github"
)

// Repo is the repository candidate handed to the display layer. It exists
// only for the duration of one discovery call; nothing is cached or shared
// across calls.
type Repo struct {
	Owner       string
	Name        string
	FullName    string
	HTMLURL     string
	Description string
	Stars       int
	Language    string
	Archived    bool
	Private     bool
	Fork        bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	// Language narrowing for the random-date search; applied with
	// probability 0.5 per attempt.
	searchLanguages = []string{"python", "javascript", "java", "go", "rust", "typescript", "c++"}

	// Candidate languages for the popular-repo fallback.
	popularLanguages = []string{"python", "javascript", "java", "go", "rust", "typescript"}

	// Repositories created before this date are too numerous and too dead
	// to make interesting picks.
	searchDateFloor = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
)

const (
	repoSearchPageSize = 50
	languageFilterProb = 0.5
	starsFilterProb    = 0.3

	// Numeric ID window for the repository-listing fallback; roughly the
	// range of repositories created in the last few years.
	listOffsetMin = 50_000_000
	listOffsetMax = 200_000_000
)

// BackoffPolicy bounds a strategy loop: how many attempts it gets and how
// long it waits between them.
type BackoffPolicy struct {
	Attempts int
	Delay    time.Duration
}

// RepoFinder discovers random repositories. All network calls are
// synchronous and every failure collapses to "no candidate"; the only
// shared state is the injected random generator.
type RepoFinder struct {
	client  *github.Client
	rng     *rand.Rand
	search  BackoffPolicy
	listing BackoffPolicy
	sleep   func(time.Duration)
	logger  *Logger
}

func NewRepoFinder(client *github.Client, rng *rand.Rand, config *Config) *RepoFinder {
	return &RepoFinder{
		client:  client,
		rng:     rng,
		search:  BackoffPolicy{Attempts: config.MaxSearchAttempts, Delay: config.RetryDelay},
		listing: BackoffPolicy{Attempts: config.MaxFallbackAttempts},
		sleep:   time.Sleep,
		logger:  GetLogger(),
	}
}

// FindRandomRepo runs the discovery strategies in order and returns the
// first candidate found, or nil when every strategy comes up empty. It
// never returns an error: absence is the failure signal.
func (f *RepoFinder) FindRandomRepo(ctx context.Context) *Repo {
	strategies := []func(context.Context) *Repo{
		f.searchByRandomDate,
		f.listByRandomOffset,
		f.searchPopular,
	}

	for _, strategy := range strategies {
		if repo := strategy(ctx); repo != nil {
			return repo
		}
	}

	f.logger.Info("all repository strategies exhausted")
	return nil
}

// searchByRandomDate queries for repositories created on a random day and
// picks one from the page. The date window plus occasional language and
// star narrowing keeps the result set varied without pinning it to the
// search index's first page.
func (f *RepoFinder) searchByRandomDate(ctx context.Context) *Repo {
	entry := f.logger.WithField("strategy", "search-by-random-date")

	for attempt := 1; attempt <= f.search.Attempts; attempt++ {
		day := randomDateBetween(f.rng, searchDateFloor, time.Now().UTC())
		query := fmt.Sprintf("created:%s", day.Format("2006-01-02"))

		if f.rng.Float64() < languageFilterProb {
			if lang, ok := pickOne(f.rng, searchLanguages); ok {
				query += " language:" + lang
			}
		}
		if f.rng.Float64() < starsFilterProb {
			query += " stars:>=1"
		}

		entry.Info("attempt %d: %s", attempt, query)

		opts := &github.SearchOptions{
			Sort:        "updated",
			Order:       "desc",
			ListOptions: github.ListOptions{PerPage: repoSearchPageSize},
		}
		result, _, err := f.client.Search.Repositories(ctx, query, opts)
		if err != nil {
			logAPIFailure(entry, "search/repositories", err)
		} else if repo, ok := pickActiveRepo(f.rng, result.Repositories); ok {
			entry.Info("found %s", repo.FullName)
			return repo
		}

		// Space out attempts so an unauthenticated client does not burn
		// through the search quota.
		if attempt < f.search.Attempts {
			f.sleep(f.search.Delay)
		}
	}

	entry.Info("no candidates after %d attempts", f.search.Attempts)
	return nil
}

// listByRandomOffset lists public repositories with an ID greater than a
// random offset. Unlike search this endpoint is not index-backed, so it
// reaches repositories the search strategies never surface.
func (f *RepoFinder) listByRandomOffset(ctx context.Context) *Repo {
	entry := f.logger.WithField("strategy", "list-by-random-offset")

	for attempt := 1; attempt <= f.listing.Attempts; attempt++ {
		since := int64(listOffsetMin + f.rng.Intn(listOffsetMax-listOffsetMin+1))
		entry.Info("attempt %d: since=%d", attempt, since)

		repos, _, err := f.client.Repositories.ListAll(ctx, &github.RepositoryListAllOptions{Since: since})
		if err != nil {
			logAPIFailure(entry, "repositories", err)
			continue
		}

		if repo, ok := pickPublicSourceRepo(f.rng, repos); ok {
			entry.Info("found %s", repo.FullName)
			return repo
		}
	}

	entry.Info("no candidates after %d attempts", f.listing.Attempts)
	return nil
}

// searchPopular is the last resort: one page of moderately starred
// repositories in a random language. A single attempt, no retry.
func (f *RepoFinder) searchPopular(ctx context.Context) *Repo {
	entry := f.logger.WithField("strategy", "search-popular")

	lang, _ := pickOne(f.rng, popularLanguages)
	query := fmt.Sprintf("language:%s stars:10..1000", lang)
	entry.Info("query: %s", query)

	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: repoSearchPageSize},
	}
	result, _, err := f.client.Search.Repositories(ctx, query, opts)
	if err != nil {
		logAPIFailure(entry, "search/repositories", err)
		return nil
	}

	repo, ok := pickActiveRepo(f.rng, result.Repositories)
	if !ok {
		return nil
	}
	entry.Info("found %s", repo.FullName)
	return repo
}

// pickActiveRepo filters archived repositories out of a page and picks one
// uniformly at random. If filtering empties a non-empty page, the
// unfiltered page is used so the attempt still yields a candidate.
func pickActiveRepo(rng *rand.Rand, repos []*github.Repository) (*Repo, bool) {
	active := make([]*github.Repository, 0, len(repos))
	for _, r := range repos {
		if !r.GetArchived() {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		active = repos
	}

	chosen, ok := pickOne(rng, active)
	if !ok {
		return nil, false
	}
	return extractRepo(chosen), true
}

// pickPublicSourceRepo drops private, fork, and archived entries before
// picking, with the same empty-page fallback rule as pickActiveRepo.
func pickPublicSourceRepo(rng *rand.Rand, repos []*github.Repository) (*Repo, bool) {
	filtered := make([]*github.Repository, 0, len(repos))
	for _, r := range repos {
		if r.GetPrivate() || r.GetFork() || r.GetArchived() {
			continue
		}
		filtered = append(filtered, r)
	}
	if len(filtered) == 0 {
		filtered = repos
	}

	chosen, ok := pickOne(rng, filtered)
	if !ok {
		return nil, false
	}
	return extractRepo(chosen), true
}

func extractRepo(r *github.Repository) *Repo {
	repo := &Repo{
		Owner:       r.GetOwner().GetLogin(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		HTMLURL:     normalizeToHTTPS(r.GetHTMLURL()),
		Description: strings.TrimSpace(r.GetDescription()),
		Stars:       r.GetStargazersCount(),
		Language:    r.GetLanguage(),
		Archived:    r.GetArchived(),
		Private:     r.GetPrivate(),
		Fork:        r.GetFork(),
		CreatedAt:   r.GetCreatedAt().Time,
		UpdatedAt:   r.GetUpdatedAt().Time,
	}

	if repo.FullName == "" && repo.Owner != "" && repo.Name != "" {
		repo.FullName = repo.Owner + "/" + repo.Name
	}
	if repo.HTMLURL == "" && repo.Owner != "" && repo.Name != "" {
		repo.HTMLURL = githubHostPrefix + repo.Owner + "/" + repo.Name
	}

	return repo
}
