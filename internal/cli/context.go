package cli

import "context"

// cmdContext is the root context for command execution. Commands are
// short-lived; per-query timeouts are applied inside the relay pool.
func cmdContext() context.Context {
	return context.Background()
}
