package main

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/go-github/v58/github"
)

// Issue is the issue candidate handed to the display layer. IsPullRequest
// is always false for anything the finder returns; the field exists so the
// extraction is honest about what the API sent.
type Issue struct {
	Title         string
	State         string
	HTMLURL       string
	RepoFullName  string
	Labels        []string
	Body          string
	IsPullRequest bool
}

// Label strings conventionally used to mark issues suitable for new
// contributors, tried in random order each run.
var issueLabelCandidates = []string{
	"good first issue",
	"good-first-issue",
	"good first bug",
	"good beginner",
	"beginner",
	"easy",
	"help wanted",
	"good first contribution",
}

// Full-text fallback when none of the label searches yields anything.
var issueTextQueries = []string{
	`"good first issue" in:title state:open`,
	`"help wanted" in:title state:open`,
}

// Substrings that mark a label as beginner-signal in the random-repo
// fallback, matched case-insensitively.
var beginnerLabelSignals = []string{"good", "first", "beginner", "easy", "help"}

const (
	issuePageSize = 30
	apiRepoPrefix = "https://api.github.com/repos/"
)

// IssueFinder discovers random beginner-friendly issues. The second
// strategy leans on RepoFinder's popular-repo search to find repositories
// worth inspecting.
type IssueFinder struct {
	client     *github.Client
	repos      *RepoFinder
	rng        *rand.Rand
	labelTries int
	fallback   BackoffPolicy
	language   string
	logger     *Logger
}

func NewIssueFinder(client *github.Client, repos *RepoFinder, rng *rand.Rand, config *Config) *IssueFinder {
	return &IssueFinder{
		client:     client,
		repos:      repos,
		rng:        rng,
		labelTries: config.MaxIssueAttempts,
		fallback:   BackoffPolicy{Attempts: config.MaxFallbackAttempts},
		language:   config.IssueLanguage,
		logger:     GetLogger(),
	}
}

// FindRandomIssue runs the discovery strategies in order and returns the
// first candidate found, or nil when both come up empty.
func (f *IssueFinder) FindRandomIssue(ctx context.Context) *Issue {
	strategies := []func(context.Context) *Issue{
		f.searchByLabelOrText,
		f.listIssuesOfRandomRepo,
	}

	for _, strategy := range strategies {
		if issue := strategy(ctx); issue != nil {
			return issue
		}
	}

	f.logger.Info("all issue strategies exhausted")
	return nil
}

// searchByLabelOrText shuffles the beginner-label candidates, searches the
// first few as exact labels on open issues, and falls back to fixed
// full-text queries when no label search yields a usable candidate.
func (f *IssueFinder) searchByLabelOrText(ctx context.Context) *Issue {
	entry := f.logger.WithField("strategy", "search-by-label-or-text")

	labels := shuffledCopy(f.rng, issueLabelCandidates)
	tries := f.labelTries
	if tries > len(labels) {
		tries = len(labels)
	}

	for _, label := range labels[:tries] {
		query := fmt.Sprintf("label:%q state:open", label)
		if f.language != "" {
			query += " language:" + f.language
		}
		entry.Info("label search: %s", query)

		if issue := f.searchIssues(ctx, entry, query); issue != nil {
			return issue
		}
	}

	for _, query := range issueTextQueries {
		entry.Info("text search: %s", query)
		if issue := f.searchIssues(ctx, entry, query); issue != nil {
			return issue
		}
	}

	entry.Info("no candidates from label or text search")
	return nil
}

// searchIssues runs one issue-search query, drops pull requests, and picks
// uniformly from the remainder. The search API mixes pull requests into
// issue results; the pull_request marker is the only reliable tell.
func (f *IssueFinder) searchIssues(ctx context.Context, entry *LogEntry, query string) *Issue {
	opts := &github.SearchOptions{
		Sort:        "updated",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: issuePageSize},
	}
	result, _, err := f.client.Search.Issues(ctx, query, opts)
	if err != nil {
		logAPIFailure(entry, "search/issues", err)
		return nil
	}

	notPRs := make([]*github.Issue, 0, len(result.Issues))
	for _, it := range result.Issues {
		if it.IsPullRequest() {
			continue
		}
		notPRs = append(notPRs, it)
	}

	chosen, ok := pickOne(f.rng, notPRs)
	if !ok {
		return nil
	}

	issue := extractIssue(chosen)
	entry.Info("found issue: %s", truncateString(issue.Title, 50))
	return issue
}

// listIssuesOfRandomRepo repeatedly grabs a popularity-filtered random
// repository and inspects its open issues for beginner-signal labels.
func (f *IssueFinder) listIssuesOfRandomRepo(ctx context.Context) *Issue {
	entry := f.logger.WithField("strategy", "list-issues-of-random-repo")

	for attempt := 1; attempt <= f.fallback.Attempts; attempt++ {
		repo := f.repos.searchPopular(ctx)
		if repo == nil || repo.Owner == "" || repo.Name == "" {
			continue
		}

		entry.Info("attempt %d: checking %s", attempt, repo.FullName)

		opts := &github.IssueListByRepoOptions{
			State:       "open",
			ListOptions: github.ListOptions{PerPage: issuePageSize},
		}
		issues, _, err := f.client.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			logAPIFailure(entry, "repos/"+repo.FullName+"/issues", err)
			continue
		}

		candidates := make([]*github.Issue, 0, len(issues))
		for _, it := range issues {
			if it.IsPullRequest() {
				continue
			}
			if hasBeginnerLabel(it.Labels) {
				candidates = append(candidates, it)
			}
		}

		if chosen, ok := pickOne(f.rng, candidates); ok {
			issue := extractIssue(chosen)
			entry.Info("found issue: %s", truncateString(issue.Title, 50))
			return issue
		}
	}

	entry.Info("no candidates after %d attempts", f.fallback.Attempts)
	return nil
}

func hasBeginnerLabel(labels []*github.Label) bool {
	for _, label := range labels {
		name := strings.ToLower(label.GetName())
		for _, signal := range beginnerLabelSignals {
			if strings.Contains(name, signal) {
				return true
			}
		}
	}
	return false
}

func labelNames(labels []*github.Label) []string {
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		names = append(names, label.GetName())
	}
	return names
}

func extractIssue(it *github.Issue) *Issue {
	issue := &Issue{
		Title:         it.GetTitle(),
		State:         it.GetState(),
		HTMLURL:       normalizeToHTTPS(it.GetHTMLURL()),
		Labels:        labelNames(it.Labels),
		Body:          it.GetBody(),
		IsPullRequest: it.IsPullRequest(),
	}

	// Search results carry the owning repository only as an API URL;
	// listing results carry nothing, so fall back to the HTML link.
	if repoURL := it.GetRepositoryURL(); strings.HasPrefix(repoURL, apiRepoPrefix) {
		issue.RepoFullName = strings.TrimPrefix(repoURL, apiRepoPrefix)
	} else if strings.HasPrefix(issue.HTMLURL, githubHostPrefix) {
		parts := strings.Split(issue.HTMLURL, "/")
		if len(parts) >= 5 {
			issue.RepoFullName = parts[3] + "/" + parts[4]
		}
	}

	return issue
}
