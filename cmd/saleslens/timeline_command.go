package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"saleslens/internal/config"
	"saleslens/internal/logging"
	"saleslens/internal/store"
	"saleslens/internal/timeline"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <session-id>",
		Short: "Print the merged transcript and physiology timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				sess, err := st.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				builder := timeline.NewBuilder(st, logging.NewNop())
				entries, err := builder.Build(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No timeline data for this session.")
					return nil
				}
				fmt.Fprintln(out, timeline.Format(entries, sess.StartTimeMS))
				return nil
			})
		},
	}
}
