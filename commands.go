package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

type CLICommand string

const (
	CmdRepo  CLICommand = "repo"
	CmdIssue CLICommand = "issue"
	CmdHelp  CLICommand = "help"
)

func ParseCLIArgs() (CLICommand, []string) {
	if len(os.Args) < 2 {
		return CmdRepo, nil
	}

	cmd := CLICommand(os.Args[1])
	args := os.Args[2:]

	return cmd, args
}

func RunCLICommand(ctx context.Context, repoFinder *RepoFinder, issueFinder *IssueFinder, cmd CLICommand, args []string) error {
	switch cmd {
	case CmdRepo:
		return runRepoCommand(ctx, repoFinder, args)
	case CmdIssue:
		return runIssueCommand(ctx, issueFinder, args)
	case CmdHelp:
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func runRepoCommand(ctx context.Context, finder *RepoFinder, args []string) error {
	fs := flag.NewFlagSet("repo", flag.ContinueOnError)
	open := fs.Bool("open", false, "open the result in the browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("🔎 Finding a random repository...")

	repo := finder.FindRandomRepo(ctx)
	if repo == nil {
		DisplayRepoNotFound()
		return nil
	}

	DisplayRepo(repo)
	if *open {
		openLink(repo.HTMLURL)
	}
	return nil
}

func runIssueCommand(ctx context.Context, finder *IssueFinder, args []string) error {
	fs := flag.NewFlagSet("issue", flag.ContinueOnError)
	open := fs.Bool("open", false, "open the result in the browser")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("🔎 Searching for beginner-friendly issues...")

	issue := finder.FindRandomIssue(ctx)
	if issue == nil {
		DisplayIssueNotFound()
		return nil
	}

	DisplayIssue(issue)
	if *open {
		openLink(issue.HTMLURL)
	}
	return nil
}

// openLink reports a failed browser launch to the user without treating it
// as a command failure; the result is already on screen.
func openLink(url string) {
	if err := OpenInBrowser(url); err != nil {
		fmt.Printf("\n⚠️  %v\n", err)
	}
}

func printUsage() {
	fmt.Println("Usage: github-random-finder [command] [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  repo    find a random public repository (default)")
	fmt.Println("  issue   find a random beginner-friendly issue")
	fmt.Println("  help    show this help")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -open   open the found item in the browser")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GITHUB_TOKEN             optional token for higher rate limits")
	fmt.Println("  ISSUE_LANGUAGE           language scope for issue searches (default: python)")
	fmt.Println("  MAX_SEARCH_ATTEMPTS      attempts for the random-date search (default: 3)")
	fmt.Println("  MAX_FALLBACK_ATTEMPTS    attempts for the fallback strategies (default: 3)")
	fmt.Println("  MAX_ISSUE_ATTEMPTS       labels tried per issue search (default: 3)")
	fmt.Println("  REQUEST_TIMEOUT_SECONDS  per-request timeout (default: 15)")
	fmt.Println("  RETRY_DELAY_MS           delay between search attempts (default: 1000)")
}
