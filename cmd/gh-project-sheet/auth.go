package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naag/gh-project-sheet/internal/github"
	"github.com/naag/gh-project-sheet/internal/logging"
)

var authCheckCmd = &cobra.Command{
	Use:          "auth-check",
	Short:        "Check that the configured GitHub token is valid",
	SilenceUsage: true,
	RunE:         runAuthCheck,
}

func runAuthCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	httpClient := github.NewHTTPClient(ctx, github.ClientOptions{
		Token:   cfg.GitHub.Token,
		Domain:  cfg.GitHub.Domain,
		Timeout: cfg.HTTPTimeout,
		Debug:   debugOutput(),
	})

	login, err := github.VerifyToken(ctx, httpClient, github.RESTEndpoint(cfg.GitHub.Domain))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Authenticated to %s as %s (token %s)\n",
		cfg.GitHub.Domain, login, logging.MaskSensitive(cfg.GitHub.Token))
	return nil
}
