package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config     *config.Config
	discoverer *discovery.Discoverer
	formatter  *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	discoverer *discovery.Discoverer,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:     cfg,
		discoverer: discoverer,
		formatter:  formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	configureDiscoverer(lc.discoverer, lc.config)

	files, err := lc.discoverer.Sources(args, lc.config.Flags.NameFilter)
	if errors.Is(err, discovery.ErrNoTests) {
		color.Yellow("No tests found")
		return nil
	}
	if err != nil {
		return err
	}

	return lc.formatter.PrintTargetList(files, lc.config.Flags.TestCases)
}
