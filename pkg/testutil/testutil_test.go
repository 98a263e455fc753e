// pkg/testutil/testutil_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Filesystem (t.TempDir), Environment (t.Setenv)
// PURPOSE: Test the test helpers themselves

package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dispatchr/pkg/testutil"
)

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "nested/file.toml", "x = 1")

	assert.Equal(t, filepath.Join(dir, "nested", "file.toml"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1", string(data))
}

func TestNewEnv(t *testing.T) {
	env := testutil.NewEnv(t)

	assert.Equal(t, env.ConfigHome, os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, env.StateHome, os.Getenv("XDG_STATE_HOME"))
	assert.Equal(t, "false", os.Getenv("DISPATCHR_LOGGING_FILE"))

	cfg := env.ConfigFile("[output]\nformat = \"json\"\n")
	assert.Equal(t, filepath.Join(env.ConfigHome, "dispatchr", "config.toml"), cfg)
	assert.FileExists(t, cfg)
	assert.FileExists(t, env.File("dispatchr.toml", ""))
}

func TestChdir(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	dir := t.TempDir()
	t.Run("inner", func(t *testing.T) {
		testutil.Chdir(t, dir)
		wd, err := os.Getwd()
		require.NoError(t, err)
		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		wdResolved, err := filepath.EvalSymlinks(wd)
		require.NoError(t, err)
		assert.Equal(t, resolved, wdResolved)
	})

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
