package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, _ := InitLogger(config.LogLevel, config.LogFormat)
	defer logger.Close()

	if !config.HasToken() {
		logger.Warn("GITHUB_TOKEN not set, unauthenticated rate limits apply")
	}

	client := NewGitHubClient(config)
	rng := newRNG()
	repoFinder := NewRepoFinder(client, rng, config)
	issueFinder := NewIssueFinder(client, repoFinder, rng, config)

	cmd, args := ParseCLIArgs()
	if err := RunCLICommand(context.Background(), repoFinder, issueFinder, cmd, args); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
