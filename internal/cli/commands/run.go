package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/orchestrator"
	"runtests/internal/storage"
	"runtests/internal/ui"
)

// RunCommand handles the build
type RunCommand struct {
	config       *config.Config
	discoverer   *discovery.Discoverer
	orchestrator *orchestrator.Orchestrator
	storage      storage.Storage
	logger       zerolog.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	orch *orchestrator.Orchestrator,
	st storage.Storage,
	logger zerolog.Logger,
) *RunCommand {
	return &RunCommand{
		config:       cfg,
		discoverer:   discoverer,
		orchestrator: orch,
		storage:      st,
		logger:       logger,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	configureDiscoverer(rc.discoverer, rc.config)

	if stderrIsTerminal() {
		rc.orchestrator.SetProgress(func(steps int) orchestrator.Progress {
			return ui.NewProgressBar(steps, os.Stderr)
		})
	}

	flags := rc.config.Flags
	report, err := rc.orchestrator.Run(cmd.Context(), orchestrator.Options{
		Tests:      args,
		Jobs:       rc.config.Jobs,
		NameFilter: flags.NameFilter,
		Each:       flags.Each,
		DryRun:     flags.DryRun,
	})

	if !flags.NoReport && !flags.DryRun {
		if saveErr := rc.storage.Save(report); saveErr != nil {
			rc.logger.Warn().Err(saveErr).Msg("Could not save run report")
		} else {
			rc.logger.Debug().Str("path", rc.config.GetOutputPath()).Msg("Saved run report")
		}
	}

	if err != nil {
		return err
	}
	rc.logger.Info().
		Str("run_id", report.RunID).
		Int("targets", len(report.Targets)).
		Str("duration", report.Duration).
		Msg("Build finished")
	return nil
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
