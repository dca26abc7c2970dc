package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"saleslens/internal/config"
	"saleslens/internal/insights"
	"saleslens/internal/logging"
	"saleslens/internal/services/reasoning"
	"saleslens/internal/store"
	"saleslens/internal/timeline"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <session-id>",
		Short: "Run reasoning analysis on a completed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				if cfg.Reasoning.APIKey == "" {
					return errors.New("reasoning api key not configured; set reasoning.api_key or export SALESLENS_REASONING_API_KEY")
				}

				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return err
				}
				client := reasoning.NewClient(reasoning.Config{
					APIKey:         cfg.Reasoning.APIKey,
					BaseURL:        cfg.Reasoning.BaseURL,
					Model:          cfg.Reasoning.Model,
					TimeoutSeconds: cfg.Reasoning.TimeoutSeconds,
				})
				pipeline := insights.NewPipeline(st, timeline.NewBuilder(st, logger), client, logger)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Analyzing session %s...\n", args[0])
				result, err := pipeline.Analyze(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				fmt.Fprintln(out, "Analysis complete.")
				fmt.Fprintf(out, "  Score:         %d/100\n", result.OverallScore)
				fmt.Fprintf(out, "  Summary:       %s\n", result.Summary)
				fmt.Fprintf(out, "  Key moments:   %d\n", len(result.KeyMoments))
				fmt.Fprintf(out, "  Coaching tips: %d\n", len(result.CoachingTips))
				return nil
			})
		},
	}
}
