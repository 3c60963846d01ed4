package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suretylabs/surety/internal/client"
	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/funding"
)

// GoalOptions holds flags for the goal subcommands.
type GoalOptions struct {
	*RootOptions
	CacheOptions
}

// NewGoalCommand creates the goal command group.
func NewGoalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Inspect crowdfunding goals",
	}
	cmd.AddCommand(newGoalProgressCommand(rootOpts))
	return cmd
}

func newGoalProgressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GoalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "progress <goal-event-id>",
		Short: "Aggregate zap receipts into funding progress",
		Long: `Aggregate every cached zap receipt referencing a goal into the
funding progress view: raised total, completion percentage and
per-contributor breakdown. Receipts found via both the goal reference and
the task address count once.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalProgress(opts, args[0], cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

// goalProgressResult is the JSON payload of the progress command.
type goalProgressResult struct {
	Goal     *escrow.FundingGoal `json:"goal"`
	Progress funding.Progress    `json:"progress"`
}

func runGoalProgress(opts *GoalOptions, goalID string, out io.Writer) error {
	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	goal, progress, err := env.client.GoalProgress(cmdContext(), goalID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return WrapExitError(ExitFailure, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "aggregate goal", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	result := goalProgressResult{Goal: goal, Progress: progress}
	return formatter.Success(result, func(w io.Writer) {
		renderProgress(w, progress)
	})
}

func renderProgress(w io.Writer, p funding.Progress) {
	fmt.Fprintf(w, "raised:   %d / %d sats (%.1f%%)\n", p.RaisedSats, p.TargetSats, p.PercentComplete)
	if p.GoalMet {
		fmt.Fprintln(w, "goal met")
	}
	for _, c := range p.Contributors {
		fmt.Fprintf(w, "  %s  %d sats  (%.1f%%)\n", short(c.PubKey), c.AmountSats, c.Percentage*100)
	}
}
