package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

const userAgent = "github-random-finder/1.0"

// NewGitHubClient builds the API client. With a token configured the client
// goes through an oauth2 transport, which raises the search rate limit from
// 10 to 30 requests per minute.
func NewGitHubClient(config *Config) *github.Client {
	httpClient := &http.Client{Timeout: config.RequestTimeout}

	if config.HasToken() {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: config.GitHubToken},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = config.RequestTimeout
	}

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent
	return client
}

// logAPIFailure classifies a failed API call and logs it. Callers treat
// every failure as "no result"; nothing here is ever re-raised. Rate-limit
// exhaustion is reported separately from generic HTTP errors so the user
// can tell quota problems apart from flaky networks.
func logAPIFailure(entry *LogEntry, endpoint string, err error) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		entry.Warn("rate limit exhausted for %s, resets at %s", endpoint, rateErr.Rate.Reset.Time.Format("15:04:05"))
		return
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		entry.Warn("secondary rate limit hit for %s: %s", endpoint, abuseErr.Message)
		return
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		status := 0
		if respErr.Response != nil {
			status = respErr.Response.StatusCode
		}
		entry.Warn("HTTP %d from %s: %s", status, endpoint, truncateString(respErr.Message, 200))
		return
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			entry.Warn("request timeout for %s", endpoint)
			return
		}
		var netErr net.Error
		if errors.As(urlErr.Err, &netErr) || errors.Is(urlErr.Err, context.DeadlineExceeded) {
			entry.Warn("connection error for %s: %v", endpoint, urlErr.Err)
			return
		}
	}

	// Covers undecodable bodies and anything else go-github surfaces.
	entry.Warn("request error for %s: %v", endpoint, err)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
