package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"neptune-workers/internal/common/config"
	"neptune-workers/internal/common/logger"
	"neptune-workers/internal/dataset"
	"neptune-workers/internal/httpapi"
	"neptune-workers/internal/models"
	calculateneptunescore "neptune-workers/internal/workers/search/calculate-neptune-score"
	performsearch "neptune-workers/internal/workers/search/perform-search"
	rankproviders "neptune-workers/internal/workers/search/rank-providers"
)

func newSearchCmd() *cobra.Command {
	var (
		jsonOutput bool
		delay      time.Duration
		limit      int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the provider dataset",
		Long:  `Classify the query, rank matching providers by Neptune Score and print the composed response.`,
		Example: `  search-cli search "Best plumbers near me"
  search-cli search --json --delay 0 appliance repair`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("query must not be empty")
			}

			cfg := performsearch.LoadConfig()
			if appCfg, err := config.Load(); err == nil {
				cfg = performsearch.ConfigFrom(appCfg.Search)
			}
			if cmd.Flags().Changed("delay") {
				cfg.Delay = delay
			}
			if limit < 0 || limit > rankproviders.MaxResults {
				return fmt.Errorf("--limit must be between 1 and %d", rankproviders.MaxResults)
			}
			if limit > 0 {
				cfg.MaxResults = limit
			}

			log := logger.NewNoOpLogger()
			if verbose {
				log = logger.NewStructured("debug", "console")
			}

			resp, err := performsearch.NewSearcher(cfg, log, nil).Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printSearch(cmd.OutOrStdout(), resp, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().DurationVar(&delay, "delay", performsearch.DefaultDelay, "Simulated search latency")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum providers to return, at most 3 (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline details to stderr")

	return cmd
}

func printSearch(w io.Writer, resp *models.SearchResponse, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.SearchResult{
			SearchResponse: resp,
			Cards:          httpapi.Cards(resp.Providers),
		})
	}

	fmt.Fprintln(w, resp.LLMResponse)
	if resp.TotalResults == 0 {
		return nil
	}

	fmt.Fprintf(w, "\nTop %d providers:\n\n", resp.TotalResults)
	for _, card := range httpapi.Cards(resp.Providers) {
		p := resp.Providers[card.Rank-1]
		fmt.Fprintf(w, "  #%d %s\n", card.Rank, p.Name)
		fmt.Fprintf(w, "     Neptune Score: %.1f (%s)\n", p.NeptuneScore, card.Tier.Name)
		fmt.Fprintf(w, "     %.1f/5 (%d reviews)  %s  %s\n", p.Rating, p.ReviewCount, p.Price, p.Availability)
		fmt.Fprintf(w, "     %s  via %s\n\n", card.FormattedPhone, p.Source)
	}
	return nil
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <provider-id>",
		Short: "Explain the Neptune Score of a dataset provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid provider id %q: %w", args[0], err)
			}
			p, ok := dataset.ByID(id)
			if !ok {
				return fmt.Errorf("provider %d not found", id)
			}

			b := calculateneptunescore.Breakdown(p)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", p.Name)
			fmt.Fprintf(w, "  rating        %6.2f\n", b.Rating)
			fmt.Fprintf(w, "  reviews       %6.2f\n", b.Reviews)
			fmt.Fprintf(w, "  response time %6.2f\n", b.ResponseTime)
			fmt.Fprintf(w, "  verification  %6.2f\n", b.Verification)
			fmt.Fprintf(w, "  experience    %6.2f\n", b.Experience)
			fmt.Fprintf(w, "  availability  %6.2f\n", b.Availability)
			fmt.Fprintf(w, "  Neptune Score %6.1f\n", calculateneptunescore.Score(p))
			return nil
		},
	}
}

func newLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Print the Neptune Score legend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			legend := httpapi.Legend()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, legend.Title)
			fmt.Fprintln(w, legend.Summary)
			for _, f := range legend.Factors {
				fmt.Fprintf(w, "  - %s (%.0f%%): %s\n", f.Name, f.Percent, f.Description)
			}
			for _, t := range legend.Tiers[:len(legend.Tiers)-1] {
				fmt.Fprintf(w, "  %.0f+: %s\n", t.Min, strings.ToUpper(t.Name[:1])+t.Name[1:])
			}
			return nil
		},
	}
}
