package cli

import "runtests/internal/config"

// Flags holds command-line flags
type Flags struct {
	Jobs        int
	ProjectPath string
	Platform    string
	NameFilter  string
	Each        bool
	DryRun      bool
	NoReport    bool
	TestCases   bool
	Interactive bool
	Verbose     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Jobs:        f.Jobs,
		ProjectPath: f.ProjectPath,
		Platform:    f.Platform,
		NameFilter:  f.NameFilter,
		Each:        f.Each,
		DryRun:      f.DryRun,
		NoReport:    f.NoReport,
		TestCases:   f.TestCases,
		Interactive: f.Interactive,
		Verbose:     f.Verbose,
	}
}
