package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"runtests/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	Platform    domain.Platform

	// Build settings
	MakeBinary        string
	WindowsMakeBinary string
	MathLibsMakefile  string
	MathLibsTarget    string
	UmbrellaTarget    string
	Jobs              int

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:       DefaultProjectPath,
		Platform:          domain.DetectPlatform(),
		MakeBinary:        DefaultMakeBinary,
		WindowsMakeBinary: DefaultWindowsMakeBinary,
		MathLibsMakefile:  DefaultMathLibsMakefile,
		MathLibsTarget:    DefaultMathLibsTarget,
		UmbrellaTarget:    DefaultUmbrellaTarget,
		Jobs:              DefaultJobs,
		OutputJSONFile:    DefaultOutputJSONFile,
		OutputJSONDir:     DefaultOutputJSONDir,
		Flags:             Flags{Jobs: DefaultJobs},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// ApplyFlags copies parsed flags into the config. The project .env file is
// read once the project path is known, so flags still win over it.
func (c *Config) ApplyFlags(flags Flags) error {
	c.Flags = flags
	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if flags.Platform != "" {
		p, err := domain.ParsePlatform(flags.Platform)
		if err != nil {
			return err
		}
		c.Platform = p
	}
	return nil
}

// LoadEnv reads <project>/.env (if present) and applies RUNTESTS_* overrides
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	if v := os.Getenv(EnvMake); v != "" {
		c.MakeBinary = v
	}
	if v := os.Getenv(EnvWindowsMake); v != "" {
		c.WindowsMakeBinary = v
	}
	if v := os.Getenv(EnvMathLibsMakefile); v != "" {
		c.MathLibsMakefile = v
	}
	if v := os.Getenv(EnvUmbrellaTarget); v != "" {
		c.UmbrellaTarget = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv(EnvSkipDirs); v != "" {
		c.PathsToIgnore = splitList(v)
	}
	if v := os.Getenv(EnvPlatform); v != "" {
		p, err := domain.ParsePlatform(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPlatform, err)
		}
		c.Platform = p
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetMakeBinary returns the make executable for the configured platform
func (c *Config) GetMakeBinary() string {
	if c.Platform == domain.Windows {
		return c.WindowsMakeBinary
	}
	return c.MakeBinary
}

// GetOutputPath returns the absolute path of the run report so that run and
// report read and write the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if filepath.IsAbs(c.OutputJSONDir) {
		p = filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetLockPath returns the lock file guarding the run report
func (c *Config) GetLockPath() string {
	return c.GetOutputPath() + ".lock"
}
