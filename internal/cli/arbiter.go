package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// ArbiterOptions holds flags for the arbiter subcommands.
type ArbiterOptions struct {
	*RootOptions
	CacheOptions
}

// NewArbiterCommand creates the arbiter command group.
func NewArbiterCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arbiter",
		Short: "Inspect arbiter service listings",
	}
	cmd.AddCommand(newArbiterListCommand(rootOpts))
	return cmd
}

func newArbiterListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArbiterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the current version of every cached arbiter listing",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArbiterList(opts, cmd.OutOrStdout())
		},
	}
	addCacheFlags(cmd, &opts.CacheOptions)
	return cmd
}

func runArbiterList(opts *ArbiterOptions, out io.Writer) error {
	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	announcements := env.client.Announcements(cmdContext())
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	return formatter.Success(announcements, func(w io.Writer) {
		if len(announcements) == 0 {
			fmt.Fprintln(w, "no arbiter listings in cache")
			return
		}
		for _, ann := range announcements {
			fee := fmt.Sprintf("%g sats flat", ann.Fee.Amount)
			if ann.Fee.Type == "percentage" {
				fee = fmt.Sprintf("%g%%", ann.Fee.Amount*100)
			}
			line := fmt.Sprintf("%s/%s  %s  fee %s",
				short(ann.Arbiter), ann.ServiceID, ann.Name, fee)
			if len(ann.Categories) > 0 {
				line += "  [" + strings.Join(ann.Categories, ", ") + "]"
			}
			fmt.Fprintln(w, line)
		}
	})
}
