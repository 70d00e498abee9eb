package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRunsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse recorded scheduling runs",
	}
	cmd.AddCommand(newRunsListCmd(s), newRunsShowCmd(s))
	return cmd
}

func newRunsListCmd(s *session) *cobra.Command {
	var userID string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := s.app.Runs.ListRuns(context.Background(), userID, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "Only runs for this user")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	return cmd
}

func newRunsShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one run with its scheduled tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := s.app.Runs.GetRun(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRun(run))
			return nil
		},
	}
}
