package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"runtests/internal/config"
	"runtests/internal/domain"
)

const separator = "------------------------------------------------------------"

// Runner executes command lines through the platform shell
type Runner struct {
	config *config.Config
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a new Runner writing to the process stdout and stderr
func NewRunner(cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects the banner and the child's output streams
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run prints command, runs it and waits for it to exit. With exitOnFailure a
// defined nonzero exit code is returned as a *domain.ExitError carrying that
// code. A process that ended without an exit code (killed by a signal) is
// not treated as a failure.
func (r *Runner) Run(ctx context.Context, command string, exitOnFailure bool) (domain.CommandResult, error) {
	fmt.Fprintln(r.stdout, separator)
	fmt.Fprintln(r.stdout, command)

	shell, flag := r.shell()
	cmd := exec.CommandContext(ctx, shell, flag, command)
	setCommandLine(cmd, shell, flag, command)
	cmd.Dir = r.config.ProjectPath
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug().
		Str("shell", shell).
		Str("command", command).
		Str("dir", cmd.Dir).
		Msg("Starting command")

	start := time.Now()
	err := cmd.Run()
	var exitErr *exec.ExitError
	result := domain.CommandResult{
		Command:  command,
		Defined:  true,
		Duration: time.Since(start),
	}

	if err != nil {
		if !errors.As(err, &exitErr) {
			result.Defined = false
			return result, fmt.Errorf("run %q: %w", command, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Defined = false
			return result, fmt.Errorf("run %q: %w", command, ctxErr)
		}
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode == -1 {
			result.Defined = false
			result.ExitCode = 0
			r.logger.Warn().
				Str("command", command).
				Str("state", exitErr.String()).
				Msg("Command ended without an exit code; not treated as a failure")
		}
	}

	r.logger.Debug().
		Str("command", command).
		Int("exit_code", result.ExitCode).
		Dur("duration", result.Duration).
		Msg("Command finished")

	if exitOnFailure && result.Failed() {
		return result, &domain.ExitError{
			Code:    result.ExitCode,
			Message: fmt.Sprintf("%s failed", command),
			Err:     exitErr,
		}
	}
	return result, nil
}

func (r *Runner) shell() (string, string) {
	if r.config.Platform == domain.Windows {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Describe renders command the way Run announces it, without running it
func Describe(command string) string {
	return strings.Join([]string{separator, command}, "\n")
}
