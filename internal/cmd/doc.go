// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failed commands return an [ExitError] whose message is the trimmed
// stderr of the process, making git failures readable without extra
// wrapping. Cancelled contexts surface as [context.Canceled].
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "rev-parse", "HEAD")
//	if err != nil {
//	    return fmt.Errorf("resolve HEAD: %w", err)
//	}
//
// Every invocation is logged through the context logger in verbose mode.
package cmd
