package commands

import (
	"os"

	"github.com/spf13/cobra"

	"runtests/internal/cli"
	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/execution"
	"runtests/internal/orchestrator"
	"runtests/internal/storage"
	"runtests/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Report *ReportCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	logger := cli.NewLogger(os.Stderr)

	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore, logger)
	filter := discovery.NewFilter()
	discoverer := discovery.NewDiscoverer(scanner, filter, cfg.Platform)
	testCaseParser := discovery.NewParser()
	runner := execution.NewRunner(cfg, logger)
	makeCommands := execution.NewMakeCommands(cfg)
	orch := orchestrator.New(cfg, discoverer, runner, makeCommands, logger)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, testCaseParser)
	viewer := ui.NewReportViewer()

	return &Commands{
		Run:    NewRunCommand(cfg, discoverer, orch, jsonStorage, logger),
		List:   NewListCommand(cfg, discoverer, formatter),
		Report: NewReportCommand(cfg, jsonStorage, formatter, viewer),
	}
}

// configureDiscoverer applies settings that are only final once flags and
// the project .env have been read
func configureDiscoverer(discoverer *discovery.Discoverer, cfg *config.Config) {
	discoverer.SetPlatform(cfg.Platform)
	discoverer.SetRoot(cfg.ProjectPath)
	discoverer.SetSkipDirs(cfg.PathsToIgnore)
}

// Register wires the root command (which runs the build) and its subcommands
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cli.SetVerbose(flags.Verbose)
		return cfg.ApplyFlags(flags.ToConfigFlags())
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", config.DefaultProjectPath, "Project directory: make runs here and relative test paths are resolved against it")
	rootCmd.PersistentFlags().StringVar(&flags.Platform, "platform", "", "Target naming and make flavour: posix or windows (default: detected)")

	// Build command
	rootCmd.Args = cobra.MinimumNArgs(1)
	rootCmd.RunE = c.Run.Execute
	rootCmd.PersistentPreRunE = applyFlags
	rootCmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", config.DefaultJobs, "Number of cores for make to use")
	rootCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test sources by file name (supports wildcards, e.g. '*normal*')")
	rootCmd.Flags().BoolVar(&flags.Each, "each", false, "Also build every discovered test target after the model target")
	rootCmd.Flags().BoolVarP(&flags.DryRun, "dry-run", "n", false, "Print the make commands without running them")
	rootCmd.Flags().BoolVar(&flags.NoReport, "no-report", false, "Do not save the run report")

	// List command
	listCmd := &cobra.Command{
		Use:   "list <test path>...",
		Short: "List discovered test targets",
		Long:  "Scan the given files and directories and print the make target for every test source without building anything",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test sources by file name (supports wildcards, e.g. '*normal*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases declared in each source")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show the last run report",
		Long:  "Display the steps, exit codes and discovered targets of the last run",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	}
	reportCmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Browse the report in an interactive viewer")
	rootCmd.AddCommand(reportCmd)
}
