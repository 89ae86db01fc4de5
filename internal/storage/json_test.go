package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runtests/internal/config"
	"runtests/internal/domain"
)

func newTestStorage(t *testing.T) (*JSONStorage, *config.Config) {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return NewJSONStorage(cfg), cfg
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	st, cfg := newTestStorage(t)

	report := &domain.RunReport{
		RunID:    "3f1c2d",
		Platform: domain.Windows,
		Jobs:     4,
		Inputs:   []string{"src/test/unit"},
		Targets:  []string{"test/unit/a_test.exe"},
		Steps: []domain.Step{
			{Name: "math-libs", Result: domain.CommandResult{Command: "mingw32-make -j4 -f x math-libs", Defined: true}},
			{Name: "umbrella", Result: domain.CommandResult{Command: "mingw32-make -j4 t", Defined: true, ExitCode: 2, Duration: time.Second}},
		},
		ExitCode:  2,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, st.Save(report))

	_, err := os.Stat(cfg.GetOutputPath())
	require.NoError(t, err)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, report, loaded)
	assert.Len(t, loaded.FailedSteps(), 1)

	entries, err := os.ReadDir(filepath.Dir(cfg.GetOutputPath()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp file left behind")
	}
}

func TestJSONStorage_Overwrite(t *testing.T) {
	st, _ := newTestStorage(t)

	require.NoError(t, st.Save(&domain.RunReport{RunID: "first"}))
	require.NoError(t, st.Save(&domain.RunReport{RunID: "second"}))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.RunID)
}

func TestJSONStorage_Load_Errors(t *testing.T) {
	t.Run("missing report", func(t *testing.T) {
		st, _ := newTestStorage(t)
		_, err := st.Load()
		assert.ErrorIs(t, err, ErrNoReport)
	})

	t.Run("corrupt report", func(t *testing.T) {
		st, cfg := newTestStorage(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(cfg.GetOutputPath()), 0755))
		require.NoError(t, os.WriteFile(cfg.GetOutputPath(), []byte("{not json"), 0644))
		_, err := st.Load()
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoReport)
	})
}
