package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suretylabs/surety/internal/client"
	"github.com/suretylabs/surety/internal/settle"
)

// SettleOptions holds flags for the settle subcommands.
type SettleOptions struct {
	*RootOptions
	CacheOptions
	To     string // payout: "worker" | "patron"
	Reason string // refund: "rejected" | "cancelled"
}

// NewSettleCommand creates the settle command group.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute settlement splits",
		Long: `Compute who gets paid what when a task concludes.

Splits are derived figures for the payment layer; nothing is paid or
published by these commands.`,
	}
	cmd.AddCommand(newSettlePayoutCommand(rootOpts))
	cmd.AddCommand(newSettleRefundCommand(rootOpts))
	return cmd
}

func newSettlePayoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "payout <patron-pubkey> <task-id>",
		Short: "Compute the payout split for a task",
		Long: `Compute the payout line items for a task: the full bounty to the
recipient, plus the arbiter fee as an independently payable item when the
arbiter's policy prices one.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettlePayout(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	cmd.Flags().StringVar(&opts.To, "to", "worker", "principal recipient (worker|patron)")
	return cmd
}

func runSettlePayout(opts *SettleOptions, patron, taskID string, out io.Writer) error {
	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	splits, err := env.client.PayoutSplits(cmdContext(), patron, taskID, settle.PayoutKind(opts.To))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return WrapExitError(ExitFailure, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "compute payout", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	return formatter.Success(splits, func(w io.Writer) {
		for _, s := range splits {
			fmt.Fprintf(w, "%-11s  %s  %d sats\n", s.Label, short(s.Recipient), s.AmountSats)
		}
	})
}

func newSettleRefundCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "refund <patron-pubkey> <task-id>",
		Short: "Compute the crowdfunding refund split for a task",
		Long: `Compute per-contributor refunds for a crowdfunded task.

A cancelled task refunds the full pool; a rejected one deducts the arbiter
fee first. Shares are floored per contributor, so a few sats may remain
unallocated; that residual belongs to the flooring policy, not to any
contributor.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettleRefund(opts, args[0], args[1], cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "refund reason (rejected|cancelled, required)")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func runSettleRefund(opts *SettleOptions, patron, taskID string, out io.Writer) error {
	reason := settle.RefundReason(opts.Reason)
	if reason != settle.RefundRejected && reason != settle.RefundCancelled {
		return WrapExitError(ExitCommandError, fmt.Sprintf("unknown refund reason %q", opts.Reason), nil)
	}

	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	splits, err := env.client.RefundSplits(cmdContext(), patron, taskID, reason)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return WrapExitError(ExitFailure, err.Error(), nil)
		}
		return WrapExitError(ExitCommandError, "compute refund", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	return formatter.Success(splits, func(w io.Writer) {
		var total int64
		for _, s := range splits {
			fmt.Fprintf(w, "%s  %d sats  (paid %d, share %.1f%%)\n",
				short(s.Recipient), s.AmountSats, s.ContributionSats, s.Share*100)
			total += s.AmountSats
		}
		fmt.Fprintf(w, "total refunded: %d sats\n", total)
	})
}
