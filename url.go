package main

import "strings"

const githubHostPrefix = "https://github.com/"

// normalizeToHTTPS rewrites an insecure scheme to https. Secure URLs pass
// through unchanged, so the rewrite is idempotent.
func normalizeToHTTPS(url string) string {
	if strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http://")
	}
	return url
}

// isValidGitHubURL reports whether url points at something under a GitHub
// repository: the expected host prefix plus at least owner/name path
// segments. Splitting on "/" counts the scheme's empty segment too, hence
// the threshold of five.
func isValidGitHubURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.HasPrefix(url, githubHostPrefix) && len(strings.Split(url, "/")) >= 5
}
