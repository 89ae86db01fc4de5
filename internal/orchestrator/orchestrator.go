// Package orchestrator drives a test build: native math libraries first,
// then discovery, then the aggregate model-compilation target.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/domain"
	"runtests/internal/execution"
	"runtests/internal/ui"
)

// Step names recorded in the run report
const (
	StepMathLibs = "math-libs"
	StepUmbrella = "models"
	StepTarget   = "target"
)

// Options are the per-run inputs
type Options struct {
	Tests      []string
	Jobs       int
	NameFilter string
	// Each builds every discovered target after the umbrella target
	Each   bool
	DryRun bool
}

// Progress is notified after every executed step
type Progress interface {
	StepDone(failed bool)
	Finish()
}

// Orchestrator runs the build steps in order and stops at the first failure
type Orchestrator struct {
	config      *config.Config
	discoverer  *discovery.Discoverer
	executor    execution.Executor
	commands    *execution.MakeCommands
	logger      zerolog.Logger
	stdout      io.Writer
	stderr      io.Writer
	now         func() time.Time
	newProgress func(steps int) Progress
}

// New creates a new Orchestrator
func New(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	executor execution.Executor,
	commands *execution.MakeCommands,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		config:     cfg,
		discoverer: discoverer,
		executor:   executor,
		commands:   commands,
		logger:     logger,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		now:        time.Now,
	}
}

// SetOutput redirects dry-run listings and stop diagnostics
func (o *Orchestrator) SetOutput(stdout, stderr io.Writer) {
	o.stdout = stdout
	o.stderr = stderr
}

// SetProgress installs a constructor for the step progress display
func (o *Orchestrator) SetProgress(newProgress func(steps int) Progress) {
	o.newProgress = newProgress
}

// Run executes one build. The returned report is never nil; the error is a
// *domain.ExitError when the run must end with a specific exit code.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*domain.RunReport, error) {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Platform:  o.config.Platform,
		Jobs:      jobs,
		Inputs:    opts.Tests,
		StartedAt: o.now(),
	}

	err := o.run(ctx, opts, jobs, report)
	o.finish(report, err)
	return report, err
}

func (o *Orchestrator) run(ctx context.Context, opts Options, jobs int, report *domain.RunReport) error {
	o.logger.Debug().
		Str("run_id", report.RunID).
		Str("platform", report.Platform.String()).
		Int("jobs", jobs).
		Strs("tests", opts.Tests).
		Msg("Starting run")

	mathLibs, err := o.step(ctx, report, StepMathLibs, o.commands.MathLibs(jobs), opts.DryRun)
	if err != nil {
		return o.stop(err)
	}

	targets, err := o.discoverer.Discover(opts.Tests, opts.NameFilter)
	if errors.Is(err, discovery.ErrNoTests) {
		return o.stop(domain.NewExitError(domain.ExitCodeNoTests, "No matching tests found."))
	}
	if err != nil {
		return err
	}
	report.Targets = targets
	o.logger.Info().Int("count", len(targets)).Msg("Discovered test targets")
	o.logger.Debug().Strs("targets", targets).Msg("Test targets")

	steps := 2
	if opts.Each {
		steps += len(targets)
	}
	var progress Progress
	if o.newProgress != nil && !opts.DryRun {
		progress = o.newProgress(steps)
		progress.StepDone(mathLibs.Failed())
		defer progress.Finish()
	}

	umbrella := discovery.MapName(o.config.UmbrellaTarget, o.config.Platform)
	result, err := o.step(ctx, report, StepUmbrella, o.commands.Target(umbrella, jobs), opts.DryRun)
	if progress != nil {
		progress.StepDone(result.Failed())
	}
	if err != nil {
		return o.stop(err)
	}

	if !opts.Each {
		return nil
	}
	for _, target := range targets {
		result, err := o.step(ctx, report, StepTarget, o.commands.Target(target, jobs), opts.DryRun)
		if progress != nil {
			progress.StepDone(result.Failed())
		}
		if err != nil {
			return o.stop(err)
		}
	}
	return nil
}

// step runs one command (or only prints it on a dry run) and records it
func (o *Orchestrator) step(ctx context.Context, report *domain.RunReport, name, command string, dryRun bool) (domain.CommandResult, error) {
	if dryRun {
		fmt.Fprintln(o.stdout, execution.Describe(command))
		result := domain.CommandResult{Command: command, Defined: true, Skipped: true}
		report.Steps = append(report.Steps, domain.Step{Name: name, Result: result})
		return result, nil
	}

	result, err := o.executor.Run(ctx, command, true)
	report.Steps = append(report.Steps, domain.Step{Name: name, Result: result})
	return result, err
}

// stop prints the stop diagnostic for errors that end the run with a code
func (o *Orchestrator) stop(err error) error {
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		ui.PrintStop(o.stderr, exitErr.Message, o.now())
	}
	return err
}

func (o *Orchestrator) finish(report *domain.RunReport, err error) {
	duration := o.now().Sub(report.StartedAt)
	report.Duration = duration.String()
	report.DurationSeconds = duration.Seconds()

	if err == nil {
		return
	}
	report.Error = err.Error()
	report.ExitCode = ExitCode(err)
}

// ExitCode maps a run error to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
