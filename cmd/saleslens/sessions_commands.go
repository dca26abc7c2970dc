package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"saleslens/internal/config"
	"saleslens/internal/store"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded sessions",
	}
	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	return sessionsCmd
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				sessions, err := st.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No sessions recorded yet.")
					return nil
				}

				rows := make([][]string, 0, len(sessions))
				for _, sess := range sessions {
					customer := sess.CustomerName
					if customer == "" {
						customer = "-"
					}
					rows = append(rows, []string{
						sess.ID,
						customer,
						formatEpochMS(sess.StartTimeMS),
						formatDurationMS(sess.StartTimeMS, sess.EndTimeMS),
						string(sess.Status),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"SESSION", "CUSTOMER", "STARTED (UTC)", "DURATION", "STATUS"},
					rows,
					4,
				))
				return nil
			})
		},
	}
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one session with its insights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				sess, err := st.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				fmt.Fprintf(out, "Session %s\n", sess.ID)
				if sess.CustomerName != "" {
					fmt.Fprintf(out, "  Customer: %s\n", sess.CustomerName)
				}
				fmt.Fprintf(out, "  Started:  %s\n", formatEpochMS(sess.StartTimeMS))
				fmt.Fprintf(out, "  Ended:    %s\n", formatOptionalEpochMS(sess.EndTimeMS))
				fmt.Fprintf(out, "  Status:   %s\n", sess.Status)
				if sess.Notes != "" {
					fmt.Fprintf(out, "  Notes:    %s\n", sess.Notes)
				}

				insights, err := st.InsightsForSession(cmd.Context(), sess.ID)
				if err != nil {
					return err
				}
				if len(insights) == 0 {
					fmt.Fprintln(out, "\nNo insights recorded.")
					return nil
				}

				fmt.Fprintln(out)
				rows := make([][]string, 0, len(insights))
				for _, ins := range insights {
					title := ins.Title
					if title == "" {
						title = "-"
					}
					rows = append(rows, []string{
						string(ins.Type),
						renderSeverity(ins.Severity, colorize),
						title,
						ins.Body,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"TYPE", "SEVERITY", "TITLE", "BODY"},
					rows,
				))
				return nil
			})
		},
	}
}
