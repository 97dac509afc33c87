package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/naag/gh-project-sheet/internal/config"
	"github.com/naag/gh-project-sheet/internal/github"
	"github.com/naag/gh-project-sheet/internal/logging"
	"github.com/naag/gh-project-sheet/internal/sheet"
	"github.com/naag/gh-project-sheet/internal/sync"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the issues of the configured projects into the sheet",
	Long: `Import fetches every issue of the projects listed in PROJECT_IDS and appends
them below the rows already in the sheet. Existing rows are kept as they are.`,
	SilenceUsage: true,
	RunE:         runImport,
}

var (
	milestone      string
	promptForInput bool
	dryRun         bool
)

func init() {
	importCmd.Flags().StringVar(&milestone, "milestone", "", "Only import issues in milestone \"Sprint <number>\"")
	importCmd.Flags().BoolVar(&promptForInput, "prompt", false, "Ask for the milestone number on stdin")
	importCmd.Flags().String("backend", "", "Sheet backend: csv, sqlite, gsheets or memory")
	importCmd.Flags().String("output", "", "File of the csv or sqlite sheet")
	importCmd.Flags().String("spreadsheet-id", "", "Google spreadsheet ID")
	importCmd.Flags().String("sheet", "", "Google spreadsheet tab name")
	importCmd.Flags().String("credentials", "", "Google credentials file")
	importCmd.Flags().Int("max-pages", 0, "Maximum number of pages read per project")
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Merge into an in-memory sheet and print it as CSV")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	ids := sync.ParseProjectIDs(cfg.GitHub.ProjectIDs)
	if len(ids) == 0 {
		configErr := &config.ConfigurationError{Missing: []string{"PROJECT_IDS"}}
		fmt.Fprintf(out, "Configuration error: %s\n", configErr.Error())
		return configErr
	}

	if promptForInput {
		milestone, err = promptMilestone(cmd.InOrStdin(), out)
		if err != nil {
			return fmt.Errorf("failed to read milestone: %w", err)
		}
	}

	slog.Debug("starting import",
		"projects", len(ids),
		"milestone", milestone,
		"backend", cfg.Sheet.Backend,
		"token", logging.MaskSensitive(cfg.GitHub.Token),
	)

	client, err := github.NewGraphQLClient(github.ClientOptions{
		Token:   cfg.GitHub.Token,
		Domain:  cfg.GitHub.Domain,
		Timeout: cfg.HTTPTimeout,
		Debug:   debugOutput(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	sheetCfg := cfg.Sheet
	if dryRun {
		sheetCfg.Backend = config.BackendMemory
	}
	store, closeStore, err := openStore(ctx, sheetCfg)
	if err != nil {
		fmt.Fprintf(out, "Error while processing data: %s\n", err)
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			slog.Error("failed to close sheet", "error", err)
		}
	}()

	service := sync.NewService(client, sheet.NewMerger(store),
		sync.WithDomain(cfg.GitHub.Domain),
		sync.WithMaxPages(cfg.MaxPages),
	)

	outcome, err := service.Run(ctx, ids, milestone)
	if err != nil {
		fmt.Fprintf(out, "Error while processing data: %s\n", err)
		return err
	}

	if mem, ok := store.(*sheet.MemoryStore); ok && dryRun {
		w := csv.NewWriter(out)
		for _, row := range mem.Grid() {
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to print sheet: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("failed to print sheet: %w", err)
		}
	}

	slog.Info("import completed",
		"projects", len(outcome.Projects),
		"existing_rows", outcome.Report.Existing,
		"new_rows", outcome.Report.New,
		"failed_rows", outcome.Report.Failed,
	)
	fmt.Fprintln(out, outcome.Message())
	return nil
}
