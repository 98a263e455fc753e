// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Isolate config, state and working directories per test

package testutil

import (
	"path/filepath"
	"testing"
)

// Env is an isolated environment for one test. Config and state homes point
// into temp directories and the log file is disabled.
type Env struct {
	ConfigHome string
	StateHome  string
	WorkDir    string

	t *testing.T
}

// NewEnv creates an isolated environment. Tests using it must not call
// t.Parallel, since it sets process environment variables.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	env := &Env{
		ConfigHome: t.TempDir(),
		StateHome:  t.TempDir(),
		WorkDir:    t.TempDir(),
		t:          t,
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigHome)
	t.Setenv("XDG_STATE_HOME", env.StateHome)
	t.Setenv("DISPATCHR_LOGGING_FILE", "false")
	return env
}

// ConfigFile writes the user config file and returns its path
func (e *Env) ConfigFile(content string) string {
	e.t.Helper()
	return CreateFile(e.t, filepath.Join(e.ConfigHome, "dispatchr"), "config.toml", content)
}

// File writes a file into the work directory and returns its path
func (e *Env) File(name, content string) string {
	e.t.Helper()
	return CreateFile(e.t, e.WorkDir, name, content)
}
