package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/suretylabs/surety/internal/nostr"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	CacheOptions
	Verify bool
}

// NewIngestCommand creates the ingest command: load an exported event
// dump (one JSON event per line) into the local cache.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <events.jsonl>",
		Short: "Load an event dump into the local cache",
		Long: `Load protocol events into the local cache.

The input is one JSON event per line, the shape relays serve. Duplicate
events are skipped (the cache is content-addressed). With --verify, events
whose ID does not match their content hash are dropped.

Example:
  surety ingest --db ./surety.db export.jsonl`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args[0], cmd.OutOrStdout())
		},
	}

	addCacheFlags(cmd, &opts.CacheOptions)
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "drop events whose ID does not match their content hash")
	return cmd
}

func runIngest(opts *IngestOptions, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open event dump", err)
	}
	defer f.Close()

	env, err := openEnv(&opts.CacheOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	var saved, skipped int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev nostr.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			skipped++
			continue
		}
		if opts.Verify {
			id, err := nostr.ComputeID(ev)
			if err != nil || id != ev.ID {
				skipped++
				continue
			}
		}
		if err := env.store.SaveEvent(cmdContext(), ev); err != nil {
			skipped++
			continue
		}
		saved++
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read event dump", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	result := map[string]int{"saved": saved, "skipped": skipped}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "ingested %d events (%d skipped)\n", saved, skipped)
	})
}
