package executor

import "context"

// Executor runs external commands and reports their exit status.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether the named binary can be resolved.
	LookPath(name string) (string, error)
}
