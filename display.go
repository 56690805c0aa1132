package main

import (
	"fmt"
	"strings"
)

const (
	excerptMaxLines = 4
	excerptMaxChars = 300
)

func DisplayRepo(repo *Repo) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("🎲 RANDOM REPOSITORY")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf("\n📦 %s\n", valueOr(repo.FullName, "Unknown"))
	fmt.Printf("   URL: %s\n", valueOr(repo.HTMLURL, "N/A"))
	fmt.Printf("   Language: %s | Stars: %d\n", valueOr(repo.Language, "unknown"), repo.Stars)
	if !repo.CreatedAt.IsZero() {
		fmt.Printf("   Created: %s | Updated: %s\n",
			repo.CreatedAt.Format("2006-01-02"), repo.UpdatedAt.Format("2006-01-02"))
	}

	fmt.Println()
	fmt.Println("   Description:")
	fmt.Printf("   %s\n", valueOr(repo.Description, "No description available."))
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
}

func DisplayIssue(issue *Issue) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("🐛 RANDOM BEGINNER-FRIENDLY ISSUE")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf("\n📌 %s\n", valueOr(issue.Title, "Untitled"))
	fmt.Printf("   Repository: %s\n", valueOr(issue.RepoFullName, "Unknown"))
	fmt.Printf("   URL: %s\n", valueOr(issue.HTMLURL, "N/A"))
	fmt.Printf("   State: %s\n", capitalize(valueOr(issue.State, "unknown")))

	labelsLine := "None"
	if len(issue.Labels) > 0 {
		labelsLine = strings.Join(issue.Labels, ", ")
	}
	fmt.Printf("   Labels: %s\n", labelsLine)

	fmt.Println()
	fmt.Println("   Excerpt:")
	for _, line := range strings.Split(bodyExcerpt(issue.Body), "\n") {
		fmt.Printf("   %s\n", line)
	}
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
}

func DisplayRepoNotFound() {
	fmt.Println()
	fmt.Println("❌ Could not fetch a repository. This might be due to:")
	fmt.Println("   • GitHub API rate limits")
	fmt.Println("   • Network connectivity issues")
	fmt.Println("   • Server problems")
	fmt.Println()
	fmt.Println("   Try setting GITHUB_TOKEN for higher rate limits.")
}

func DisplayIssueNotFound() {
	fmt.Println()
	fmt.Println("❌ Could not find a suitable beginner issue. This might be due to:")
	fmt.Println("   • GitHub API rate limits")
	fmt.Println("   • Limited availability of beginner-friendly issues")
	fmt.Println("   • Network connectivity issues")
	fmt.Println()
	fmt.Println("   Try again later or set GITHUB_TOKEN for higher rate limits.")
}

// bodyExcerpt trims an issue body to the first few lines and a bounded
// character count for the card.
func bodyExcerpt(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > excerptMaxLines {
		lines = lines[:excerptMaxLines]
	}

	excerpt := strings.TrimSpace(strings.Join(lines, "\n"))
	if excerpt == "" {
		return "No description available."
	}
	if len(excerpt) > excerptMaxChars {
		excerpt = excerpt[:excerptMaxChars-3] + "..."
	}
	return excerpt
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
