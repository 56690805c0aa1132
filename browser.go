package main

import (
	"fmt"

	"github.com/pkg/browser"
)

// OpenInBrowser launches the default browser on a canonical GitHub link.
// The URL is normalized and validated first; a failed launch is reported
// to the caller and never touches discovery state.
func OpenInBrowser(rawURL string) error {
	url := normalizeToHTTPS(rawURL)
	if !isValidGitHubURL(url) {
		return fmt.Errorf("refusing to open invalid link %q", rawURL)
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}
