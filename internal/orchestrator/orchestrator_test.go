package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/domain"
	"runtests/internal/execution"
)

const (
	mathLibsCmd = "make -j2 -f lib/stan_math/make/standalone math-libs"
	umbrellaCmd = "make -j2 test/integration/compile_models_test"
)

// fakeExecutor records command lines and fails those listed in codes
type fakeExecutor struct {
	commands []string
	codes    map[string]int
}

func (f *fakeExecutor) Run(_ context.Context, command string, exitOnFailure bool) (domain.CommandResult, error) {
	f.commands = append(f.commands, command)
	code := f.codes[command]
	result := domain.CommandResult{Command: command, ExitCode: code, Defined: true}
	if exitOnFailure && code != 0 {
		return result, &domain.ExitError{Code: code, Message: command + " failed"}
	}
	return result, nil
}

type fakeProgress struct {
	done     []bool
	finished bool
}

func (p *fakeProgress) StepDone(failed bool) { p.done = append(p.done, failed) }
func (p *fakeProgress) Finish()              { p.finished = true }

type fixture struct {
	orch     *Orchestrator
	executor *fakeExecutor
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
}

func newFixture(t *testing.T, platform domain.Platform) *fixture {
	t.Helper()

	root := t.TempDir()
	for _, file := range []string{"src/test/unit/a_test.cpp", "src/test/unit/b_test.cpp", "src/test/unit/util.hpp"} {
		path := filepath.Join(root, file)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("TEST(A, b) {}\n"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src/test/empty"), 0755))
	chdir(t, root)

	cfg := config.New()
	cfg.Platform = platform
	cfg.ProjectPath = root

	executor := &fakeExecutor{codes: map[string]int{}}
	discoverer := discovery.NewDiscoverer(discovery.NewScanner(nil, zerolog.Nop()), discovery.NewFilter(), platform)
	orch := New(cfg, discoverer, executor, execution.NewMakeCommands(cfg), zerolog.Nop())

	var stdout, stderr bytes.Buffer
	orch.SetOutput(&stdout, &stderr)
	orch.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	return &fixture{orch: orch, executor: executor, stdout: &stdout, stderr: &stderr}
}

func TestOrchestrator_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("builds math libs then the umbrella target", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{mathLibsCmd, umbrellaCmd}, f.executor.commands)
		assert.Equal(t, []string{"test/unit/a_test", "test/unit/b_test"}, report.Targets)
		assert.Equal(t, 0, report.ExitCode)
		assert.True(t, report.Succeeded())
		assert.NotEmpty(t, report.RunID)
		require.Len(t, report.Steps, 2)
		assert.Equal(t, StepMathLibs, report.Steps[0].Name)
		assert.Equal(t, StepUmbrella, report.Steps[1].Name)
		assert.Empty(t, f.stderr.String())
	})

	t.Run("discovered targets are not built by default", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		_, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit/a_test.cpp"}, Jobs: 2})
		require.NoError(t, err)
		assert.NotContains(t, f.executor.commands, "make -j2 test/unit/a_test")
	})

	t.Run("jobs below one become one", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Jobs)
		assert.Equal(t, "make -j1 -f lib/stan_math/make/standalone math-libs", f.executor.commands[0])
	})

	t.Run("no tests found", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/empty"}, Jobs: 2})
		require.Error(t, err)

		var exitErr *domain.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.Equal(t, domain.ExitCodeNoTests, exitErr.Code)
		assert.Equal(t, domain.ExitCodeNoTests, report.ExitCode)

		// math libs are built before discovery runs
		assert.Equal(t, []string{mathLibsCmd}, f.executor.commands)
		assert.Equal(t, "No matching tests found.\nexit now (03/04/26 05:06:07 UTC)\n", f.stderr.String())
	})

	t.Run("math libs failure stops the run", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		f.executor.codes[mathLibsCmd] = 2
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/empty"}, Jobs: 2})

		assert.Equal(t, 2, ExitCode(err))
		assert.Equal(t, []string{mathLibsCmd}, f.executor.commands)
		assert.Empty(t, report.Targets)
		assert.Contains(t, f.stderr.String(), mathLibsCmd+" failed\nexit now (")
	})

	t.Run("umbrella failure exits with its code", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		f.executor.codes[umbrellaCmd] = 3
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2})

		assert.Equal(t, 3, ExitCode(err))
		assert.Equal(t, 3, report.ExitCode)
		assert.Len(t, report.FailedSteps(), 1)
		assert.Contains(t, report.Error, "failed")
	})

	t.Run("each builds every target after the umbrella", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		_, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, Each: true})
		require.NoError(t, err)
		assert.Equal(t, []string{
			mathLibsCmd,
			umbrellaCmd,
			"make -j2 test/unit/a_test",
			"make -j2 test/unit/b_test",
		}, f.executor.commands)
	})

	t.Run("each stops at the first failing target", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		f.executor.codes["make -j2 test/unit/a_test"] = 4
		_, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, Each: true})
		assert.Equal(t, 4, ExitCode(err))
		assert.Len(t, f.executor.commands, 3)
	})

	t.Run("name filter", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, NameFilter: "b_*"})
		require.NoError(t, err)
		assert.Equal(t, []string{"test/unit/b_test"}, report.Targets)
	})

	t.Run("windows", func(t *testing.T) {
		f := newFixture(t, domain.Windows)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, Each: true})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"mingw32-make -j2 -f lib/stan_math/make/standalone math-libs",
			"mingw32-make -j2 test/integration/compile_models_test",
			"mingw32-make -j2 test/unit/a_test.exe",
			"mingw32-make -j2 test/unit/b_test.exe",
		}, f.executor.commands)
		assert.Equal(t, domain.Windows, report.Platform)
	})

	t.Run("dry run executes nothing", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		report, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, DryRun: true})
		require.NoError(t, err)
		assert.Empty(t, f.executor.commands)
		assert.Contains(t, f.stdout.String(), mathLibsCmd)
		assert.Contains(t, f.stdout.String(), umbrellaCmd)
		for _, step := range report.Steps {
			assert.True(t, step.Result.Skipped)
		}
	})

	t.Run("progress", func(t *testing.T) {
		f := newFixture(t, domain.Posix)
		progress := &fakeProgress{}
		var steps int
		f.orch.SetProgress(func(n int) Progress {
			steps = n
			return progress
		})
		f.executor.codes["make -j2 test/unit/b_test"] = 1

		_, err := f.orch.Run(ctx, Options{Tests: []string{"src/test/unit"}, Jobs: 2, Each: true})
		require.Error(t, err)
		assert.Equal(t, 4, steps)
		assert.Equal(t, []bool{false, false, false, true}, progress.done)
		assert.True(t, progress.finished)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("boom")))
	assert.Equal(t, 9, ExitCode(domain.NewExitError(9, "x")))
	assert.Equal(t, -1, ExitCode(wrapped(domain.NewExitError(-1, "none"))))
}

func wrapped(err error) error {
	return errors.Join(errors.New("context"), err)
}
