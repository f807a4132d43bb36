package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-timelog/internal/api"
	"task-timelog/internal/config"
	"task-timelog/internal/services"
	"task-timelog/internal/timelog"
)

type openRecorder struct {
	configs []*config.Config
	closed  int
}

// opener builds a file-backed API from cfg with the clock frozen at testNow
func (r *openRecorder) opener(cfg *config.Config) (api.API, func() error, error) {
	r.configs = append(r.configs, cfg)

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, nil, err
	}
	container, err := services.NewServiceContainer(repo, config.CreateLock(cfg), timelog.FixedClock(time.Unix(testNow, 0)), cfg)
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return api.New(container, cfg), func() error {
		r.closed++
		return repo.Close()
	}, nil
}

func runRoot(t *testing.T, rec *openRecorder, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(config.NewLoader(), rec.opener)
	out := &bytes.Buffer{}
	root.SetOutput(out)
	root.SetInput(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Workflow(t *testing.T) {
	t.Setenv("TL_DB_DIR", t.TempDir())
	t.Setenv("TL_DISPLAY_LOCATION", "UTC")
	rec := &openRecorder{}

	out, err := runRoot(t, rec, "create", "--number", "T-1", "--rate", "20", "Write", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "T-1 Write report")

	out, err = runRoot(t, rec, "start", "T-1")
	require.NoError(t, err)
	assert.Equal(t, "Started timer for T-1 Write report\n", out)

	out, err = runRoot(t, rec, "list", "--running-label", "live")
	require.NoError(t, err)
	assert.Contains(t, out, "live")

	out, err = runRoot(t, rec, "show", "T-1", "--seconds")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, err = runRoot(t, rec, "edit", "T-1", "--rate", "35")
	require.NoError(t, err)
	assert.Contains(t, out, "(rate 35)")

	out, err = runRoot(t, rec, "delete", "T-1", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Deleted task: T-1 Write report\n", out)

	assert.Equal(t, len(rec.configs), rec.closed)
}

func TestRootCommand_FlagsOverrideEnvironment(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv("TL_DB_DIR", envDir)
	t.Setenv("TL_APP_VERBOSE", "false")
	rec := &openRecorder{}

	_, err := runRoot(t, rec, "list", "--db-dir", flagDir, "--verbose", "--app-timeout", "5s")
	require.NoError(t, err)

	require.Len(t, rec.configs, 1)
	cfg := rec.configs[0]
	assert.Equal(t, flagDir, cfg.Database.Dir)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
}

func TestRootCommand_Errors(t *testing.T) {
	t.Setenv("TL_DB_DIR", t.TempDir())

	t.Run("invalid configuration", func(t *testing.T) {
		t.Setenv("TL_DISPLAY_LOCATION", "Nowhere/Special")
		rec := &openRecorder{}

		_, err := runRoot(t, rec, "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Empty(t, rec.configs)
	})

	t.Run("command failure still closes", func(t *testing.T) {
		rec := &openRecorder{}

		_, err := runRoot(t, rec, "stop", "T-404")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.Equal(t, 1, rec.closed)
	})

	t.Run("wrong argument count", func(t *testing.T) {
		rec := &openRecorder{}

		_, err := runRoot(t, rec, "row", "T-1")
		assert.Error(t, err)
	})
}

func TestRootCommand_Timeouts(t *testing.T) {
	root := NewRootCommand(config.NewLoader(), nil)
	root.config = config.NewConfig()
	root.config.Application.Timeout = 10 * time.Second

	assert.Equal(t, 10*time.Second, root.getAppTimeout(timeoutDefault))
	assert.Equal(t, 20*time.Second, root.getAppTimeout(timeoutInteractive))
	assert.Equal(t, time.Duration(0), root.getAppTimeout(timeoutNone))
}
