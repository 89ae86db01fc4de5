package execution

import (
	"context"

	"runtests/internal/domain"
)

// Executor runs a shell command line to completion
type Executor interface {
	Run(ctx context.Context, command string, exitOnFailure bool) (domain.CommandResult, error)
}
