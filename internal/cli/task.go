package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suretylabs/surety/internal/client"
	"github.com/suretylabs/surety/internal/escrow"
	"github.com/suretylabs/surety/internal/parse"
)

// TaskOptions holds flags shared by the task subcommands.
type TaskOptions struct {
	*RootOptions
	CacheOptions
}

// NewTaskCommand creates the task command group.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and draft escrow tasks",
	}
	cmd.AddCommand(newTaskShowCommand(rootOpts))
	cmd.AddCommand(newTaskListCommand(rootOpts))
	cmd.AddCommand(newTaskProposeCommand(rootOpts))
	return cmd
}

func newTaskShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <patron-pubkey> <task-id>",
		Short: "Show the authoritative state of one task",
		Long: `Reconcile every cached version of a task into its current state.

The current state is whatever the authorized-supersede rules admit from the
locally synced evidence; a task unseen by any synced relay reports as not
found, which is an answer, not an error of the computation.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskShow(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

func runTaskShow(opts *TaskOptions, patron, taskID string, out io.Writer) error {
	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	task, err := env.client.CurrentTask(cmdContext(), patron, taskID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return WrapExitError(ExitFailure, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "resolve task", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	return formatter.Success(task, func(w io.Writer) {
		renderTask(w, task)
	})
}

func newTaskListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the current state of every cached task",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskList(opts, cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

func runTaskList(opts *TaskOptions, out io.Writer) error {
	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	tasks := env.client.Tasks(cmdContext())
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	return formatter.Success(tasks, func(w io.Writer) {
		if len(tasks) == 0 {
			fmt.Fprintln(w, "no tasks in cache")
			return
		}
		for _, task := range tasks {
			fmt.Fprintf(w, "%s/%s  %-11s  %d sats  %q\n",
				short(task.Patron), task.TaskID, task.Status, task.AmountSats, task.Title)
		}
	})
}

// TaskProposeOptions holds flags for drafting a task proposal.
type TaskProposeOptions struct {
	*RootOptions
	Patron     string
	TaskID     string
	Title      string
	Desc       string
	Amount     int64
	Funding    string
	GoalID     string
	ServiceRef string
	Categories []string
}

func newTaskProposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskProposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Draft an unsigned task proposal event",
		Long: `Draft the event template for a new task proposal.

The template is written to stdout as JSON for the signing collaborator;
this client never holds keys.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTaskPropose(opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Patron, "patron", "", "patron pubkey (required)")
	cmd.Flags().StringVar(&opts.TaskID, "id", "", "task identifier (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "task title (required)")
	cmd.Flags().StringVar(&opts.Desc, "description", "", "task description")
	cmd.Flags().Int64Var(&opts.Amount, "amount", 0, "bounty in sats (required)")
	cmd.Flags().StringVar(&opts.Funding, "funding", "single", "funding type (single|crowdfunding)")
	cmd.Flags().StringVar(&opts.GoalID, "goal", "", "funding goal event ID (crowdfunding only)")
	cmd.Flags().StringVar(&opts.ServiceRef, "service", "", "arbiter announcement address")
	cmd.Flags().StringSliceVar(&opts.Categories, "category", nil, "category tags")
	_ = cmd.MarkFlagRequired("patron")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runTaskPropose(opts *TaskProposeOptions, out io.Writer) error {
	task := &escrow.Task{
		TaskID:      opts.TaskID,
		Patron:      opts.Patron,
		Title:       opts.Title,
		Description: opts.Desc,
		AmountSats:  opts.Amount,
		Status:      escrow.StatusProposed,
		Funding:     escrow.FundingType(opts.Funding),
		GoalID:      opts.GoalID,
		ServiceRef:  opts.ServiceRef,
		Categories:  opts.Categories,
	}
	tmpl, err := parse.TaskEvent(task)
	if err != nil {
		return WrapExitError(ExitCommandError, "draft proposal", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(tmpl)
}

func renderTask(w io.Writer, task *escrow.Task) {
	fmt.Fprintf(w, "task:     %s\n", task.TaskID)
	fmt.Fprintf(w, "title:    %s\n", task.Title)
	fmt.Fprintf(w, "status:   %s\n", task.Status)
	fmt.Fprintf(w, "amount:   %d sats\n", task.AmountSats)
	fmt.Fprintf(w, "patron:   %s\n", task.Patron)
	if task.Arbiter != "" {
		fmt.Fprintf(w, "arbiter:  %s\n", task.Arbiter)
	}
	if task.Worker != "" {
		fmt.Fprintf(w, "worker:   %s\n", task.Worker)
	}
	fmt.Fprintf(w, "funding:  %s\n", task.Funding)
	if task.GoalID != "" {
		fmt.Fprintf(w, "goal:     %s\n", task.GoalID)
	}
	if len(task.Categories) > 0 {
		fmt.Fprintf(w, "tags:     %s\n", strings.Join(task.Categories, ", "))
	}
}

// short truncates a pubkey for table rendering.
func short(pubkey string) string {
	if len(pubkey) <= 8 {
		return pubkey
	}
	return pubkey[:8]
}
