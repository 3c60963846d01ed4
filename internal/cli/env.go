package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/suretylabs/surety/internal/client"
	"github.com/suretylabs/surety/internal/config"
	"github.com/suretylabs/surety/internal/relay"
	"github.com/suretylabs/surety/internal/store"
)

// CacheOptions are the flags every command that reads the event cache
// shares. The cache path comes from --db or, failing that, the config
// file; there are no ambient defaults.
type CacheOptions struct {
	Database string
	Config   string
	Timeout  time.Duration
}

// addCacheFlags registers the shared cache flags.
func addCacheFlags(cmd *cobra.Command, opts *CacheOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the event cache database")
	cmd.Flags().StringVar(&opts.Config, "config", "", "path to surety.yml (used when --db is absent)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "per-query time budget (default from config, else 3s)")
}

type env struct {
	store  *store.Store
	client *client.Client
}

// openEnv opens the event cache and builds a client whose only event
// source is the cache itself. Live relay sources plug into the same pool
// in the transport layer; this CLI reasons over synced evidence.
func openEnv(opts *CacheOptions) (*env, error) {
	path := opts.Database
	timeout := opts.Timeout
	if path == "" {
		if opts.Config == "" {
			return nil, WrapExitError(ExitCommandError, "no event cache: pass --db or --config", nil)
		}
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		path = cfg.Database
		if timeout == 0 {
			timeout = cfg.QueryTimeout()
		}
	}
	if timeout == 0 {
		timeout = time.Duration(config.DefaultQueryTimeoutMS) * time.Millisecond
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open event cache %s", path), err)
	}
	pool := relay.NewPool([]relay.Querier{s}, timeout, slog.Default())
	return &env{store: s, client: client.New(pool)}, nil
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
}
