package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/briteco/brief/internal/enrich"
	"github.com/briteco/brief/internal/research"
	"github.com/spf13/cobra"
)

// NewResearchCmd creates the parent research command with subcommands
func NewResearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Research newsletter material",
		Long: `Research raw material for an issue: trending topics, source articles,
claims stories, market signals, and agent-tip candidates.

Examples:
  # Discover trending P&C topics
  brief research topics

  # Scan the 8 market signals over the past two weeks
  brief research signals --window "past 2 weeks"

  # Cascade-search one topic
  brief research search "wildfire deductibles" --target 6`,
	}

	cmd.AddCommand(NewResearchTopicsCmd())
	cmd.AddCommand(NewResearchSignalsCmd())
	cmd.AddCommand(NewResearchSearchCmd())
	cmd.AddCommand(NewResearchClaimsCmd())
	cmd.AddCommand(NewResearchTipsCmd())

	return cmd
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// NewResearchTopicsCmd creates the topics subcommand
func NewResearchTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "Discover trending P&C topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator, err := buildResearchLLM()
			if err != nil {
				return err
			}

			topics, err := research.DiscoverTopics(cmd.Context(), generator)
			if err != nil {
				return err
			}
			return printJSON(topics)
		},
	}
}

// NewResearchSignalsCmd creates the signals subcommand
func NewResearchSignalsCmd() *cobra.Command {
	var (
		window  string
		exclude []string
		rank    bool
	)

	cmd := &cobra.Command{
		Use:   "signals",
		Short: "Scan the fixed market signals",
		Long:  `Run one search per market signal, dedup, filter, and optionally enrich and rank the merged pool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			provider, err := buildSearchProvider()
			if err != nil {
				return err
			}
			searcher := research.NewSearcher(provider)

			excludeSet := make(map[string]struct{}, len(exclude))
			for _, u := range exclude {
				excludeSet[u] = struct{}{}
			}

			pool := searcher.SignalFanOut(ctx, window, excludeSet)
			pool = research.FilterDenylist(pool)

			if rank {
				creativeLLM, err := buildCreativeLLM(ctx)
				if err != nil {
					return err
				}
				defer creativeLLM.Close()

				enricher := enrich.NewEnricher(creativeLLM)
				pool = enricher.Enrich(ctx, pool, enrich.TaskEditorialTriple)
				pool = enrich.RankByImpact(pool)
			}

			fmt.Fprintf(os.Stderr, "Found %d results across %d signals\n", len(pool), len(research.Signals))
			return printJSON(pool)
		},
	}

	cmd.Flags().StringVar(&window, "window", "past 2 weeks", "time window tag for signal queries")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "URLs to exclude (already covered)")
	cmd.Flags().BoolVar(&rank, "rank", true, "enrich results and rank by impact")

	return cmd
}

// NewResearchSearchCmd creates the search subcommand
func NewResearchSearchCmd() *cobra.Command {
	var (
		target  int
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "search [topic]",
		Short: "Cascade-search one topic",
		Long:  `Search a topic through the specific/broadened/generic query cascade and print the deduplicated pool.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")

			provider, err := buildSearchProvider()
			if err != nil {
				return err
			}
			searcher := research.NewSearcher(provider)

			excludeSet := make(map[string]struct{}, len(exclude))
			for _, u := range exclude {
				excludeSet[u] = struct{}{}
			}

			queries := research.BuildCascade(topic, target)
			pool := searcher.CascadeSearch(cmd.Context(), queries, target, excludeSet)
			pool = research.FilterDenylist(pool)

			return printJSON(pool)
		},
	}

	cmd.Flags().IntVar(&target, "target", 6, "number of results wanted")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "URLs to exclude (already covered)")

	return cmd
}

// NewResearchClaimsCmd creates the claims subcommand
func NewResearchClaimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claims",
		Short: "Find curious claims story candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator, err := buildResearchLLM()
			if err != nil {
				return err
			}

			claims, err := research.ResearchClaims(cmd.Context(), generator)
			if err != nil {
				return err
			}
			return printJSON(claims)
		},
	}
}

// NewResearchTipsCmd creates the tips subcommand
func NewResearchTipsCmd() *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Find Agent Advantage topic candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator, err := buildResearchLLM()
			if err != nil {
				return err
			}

			tips, err := research.ResearchAgentTips(cmd.Context(), generator, topic)
			if err != nil {
				return err
			}
			return printJSON(tips)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "narrow the tip search to a topic")

	return cmd
}
