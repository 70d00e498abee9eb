package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newWeightsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect and manage per-user objective weights",
	}

	cmd.AddCommand(
		newWeightsShowCmd(s),
		newWeightsSetCmd(s),
		newWeightsEditCmd(s),
		newWeightsResetCmd(s),
		newWeightsListCmd(s),
	)
	return cmd
}

func newWeightsShowCmd(s *session) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the weight vector a user is scheduled with",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := s.app.Weights.Get(context.Background(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserWeights(w))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// weightFlags binds one flag per weight; only flags the user set become
// overrides.
type weightFlags struct {
	breakImportance float64
	maxContinuous   int
	continuousPen   float64
	eveningPen      float64
	earlyBonus      float64
}

func (f *weightFlags) bind(cmd *cobra.Command) {
	def := domain.DefaultWeightConfig()
	cmd.Flags().Float64Var(&f.breakImportance, "break-importance", def.BreakImportance, "Reward for unscheduled time")
	cmd.Flags().IntVar(&f.maxContinuous, "max-continuous", def.MaxContinuousWorkMinutes, "Minutes of work before the continuous penalty applies")
	cmd.Flags().Float64Var(&f.continuousPen, "continuous-penalty", def.ContinuousWorkPenalty, "Penalty per minute over the continuous limit")
	cmd.Flags().Float64Var(&f.eveningPen, "evening-penalty", def.EveningWorkPenalty, "Penalty per task ending in the last hour")
	cmd.Flags().Float64Var(&f.earlyBonus, "early-bonus", def.EarlyCompletionBonus, "Pull toward finishing tasks early")
}

func (f *weightFlags) overrides(cmd *cobra.Command) domain.WeightOverrides {
	var o domain.WeightOverrides
	changed := cmd.Flags().Changed
	if changed("break-importance") {
		o.BreakImportance = &f.breakImportance
	}
	if changed("max-continuous") {
		o.MaxContinuousWorkMinutes = &f.maxContinuous
	}
	if changed("continuous-penalty") {
		o.ContinuousWorkPenalty = &f.continuousPen
	}
	if changed("evening-penalty") {
		o.EveningWorkPenalty = &f.eveningPen
	}
	if changed("early-bonus") {
		o.EarlyCompletionBonus = &f.earlyBonus
	}
	return o
}

func newWeightsSetCmd(s *session) *cobra.Command {
	var userID string
	var flags weightFlags

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store weight overrides for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := flags.overrides(cmd)
			if o == (domain.WeightOverrides{}) {
				return fmt.Errorf("nothing to set: pass at least one weight flag")
			}
			w, err := s.app.Weights.Set(context.Background(), userID, o)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserWeights(w))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newWeightsEditCmd(s *session) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a user's weights interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !s.app.interactive() {
				return fmt.Errorf("weights edit needs a terminal; use 'weights set' instead")
			}
			ctx := context.Background()
			current, err := s.app.Weights.Get(ctx, userID)
			if err != nil {
				return err
			}
			values := newWeightFormValues(current.Weights)
			if err := weightsForm(userID, values).Run(); err != nil {
				return err
			}
			o, err := values.overrides(current.Weights)
			if err != nil {
				return err
			}
			if o == (domain.WeightOverrides{}) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No changes."))
				return nil
			}
			w, err := s.app.Weights.Set(ctx, userID, o)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserWeights(w))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newWeightsResetCmd(s *session) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop a user's stored weights so the defaults apply",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.app.Weights.Reset(context.Background(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset weights for %s to defaults\n", userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newWeightsListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored weight vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := s.app.Weights.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeightList(all))
			return nil
		},
	}
}
