package commands

import (
	"github.com/spf13/cobra"

	"runtests/internal/cli"
	"runtests/internal/config"
)

// NewRootCommand assembles the runtests command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "runtests [flags] <test path>...",
		Short: "Build the native libraries and test models with make",
		Long: `Discover C++ test sources (*_test.cpp) under the given files and directories,
map them to make targets, build the native math libraries and then the model
compilation target. Paths look like 'src/test/unit', 'src/test/integration'
or 'src/test/unit/util_test.cpp'.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	return rootCmd
}
