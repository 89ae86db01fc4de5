package config

const (
	// DefaultProjectPath is the directory make is run from
	DefaultProjectPath = "."
	// DefaultJobs is the default -j value forwarded to make
	DefaultJobs = 1
	// DefaultMakeBinary is used on posix platforms
	DefaultMakeBinary = "make"
	// DefaultWindowsMakeBinary is used on windows
	DefaultWindowsMakeBinary = "mingw32-make"
	// DefaultMathLibsMakefile builds the native math libraries
	DefaultMathLibsMakefile = "lib/stan_math/make/standalone"
	// DefaultMathLibsTarget is the make target for the math libraries
	DefaultMathLibsTarget = "math-libs"
	// DefaultUmbrellaTarget compiles every test model; it is mapped like a test path
	DefaultUmbrellaTarget = "test/integration/compile_models_test"
	// DefaultOutputJSONFile is the run report file name
	DefaultOutputJSONFile = "runtests-report.json"
	// DefaultOutputJSONDir is the run report directory, relative to the project
	DefaultOutputJSONDir = "storage"
)

// Environment variables read on top of the project .env file
const (
	EnvMake             = "RUNTESTS_MAKE"
	EnvWindowsMake      = "RUNTESTS_WINDOWS_MAKE"
	EnvMathLibsMakefile = "RUNTESTS_MATH_MAKEFILE"
	EnvUmbrellaTarget   = "RUNTESTS_UMBRELLA_TARGET"
	EnvPlatform         = "RUNTESTS_PLATFORM"
	EnvOutputDir        = "RUNTESTS_OUTPUT_DIR"
	// EnvSkipDirs is a comma separated list of directory names not scanned
	EnvSkipDirs = "RUNTESTS_SKIP_DIRS"
)

// DefaultPathsToIgnore are directory names never descended into while
// scanning. Empty: every file under an input directory is considered.
var DefaultPathsToIgnore = []string{}
