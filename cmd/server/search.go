package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/shared/logging"
)

var searchFlags struct {
	criteria domain.Criteria
	pages    int
	token    string
	timeout  time.Duration
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one catalog search and print the results as JSON",
	Long: `Runs a fresh search against the scouting API with the given criteria,
then loads further pages while more results are available, up to --pages.

Example:
  scout-workspace search --pos Winger --max-age 23 --pages 2`,
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.StringVar(&searchFlags.criteria.Query, "q", "", "free-text name query")
	flags.StringVar(&searchFlags.criteria.Position, "pos", domain.AnyOption, "position")
	flags.StringVar(&searchFlags.criteria.League, "league", domain.AnyOption, "league")
	flags.StringVar(&searchFlags.criteria.Club, "club", "", "club name")
	flags.IntVar(&searchFlags.criteria.MaxAge, "max-age", domain.MaxAgeCeiling, "maximum age")
	flags.Float64Var(&searchFlags.criteria.MinValue, "min-val", 0, "minimum market value in millions")
	flags.Float64Var(&searchFlags.criteria.MaxValue, "max-val", domain.MaxValueCeiling, "maximum market value in millions")
	flags.IntVar(&searchFlags.pages, "pages", 1, "number of pages to load")
	flags.StringVar(&searchFlags.token, "token", os.Getenv("SCOUT_TOKEN"), "bearer token forwarded to the API")
	flags.DurationVar(&searchFlags.timeout, "timeout", time.Minute, "overall deadline")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	catalog, closeCache := buildCatalog(cfg, newRESTClient(cfg))
	defer closeCache()
	browser := usecase.NewCatalogBrowser(catalog, nil, logger, cfg.Workspace.PageSize)

	ctx, cancel := context.WithTimeout(cmd.Context(), searchFlags.timeout)
	defer cancel()

	if _, err := browser.RunSearch(ctx, searchFlags.token, searchFlags.criteria); err != nil {
		return err
	}
	for page := 1; page < searchFlags.pages && browser.State().HasMore; page++ {
		if _, err := browser.LoadMore(ctx, searchFlags.token); err != nil {
			return err
		}
	}

	state := browser.State()
	out, err := sonic.ConfigDefault.MarshalIndent(map[string]any{
		"criteria": state.Criteria,
		"params":   domain.ToQueryParams(state.Criteria, state.Cursor).Encode(),
		"hasMore":  state.HasMore,
		"results":  state.Results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
