// Package testutil provides helpers for testing dispatchr components.
//
// Key components:
//   - Env: isolated XDG directories and environment for config and logging
//   - CreateFile, Chdir: small filesystem helpers bound to a test's lifetime
//
// Every helper registers its cleanup with the test, so tests stay isolated
// without deferred teardown code.
package testutil
