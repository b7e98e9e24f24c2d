package testutil

import (
	"testing"

	"github.com/arthur-debert/srcbundle/pkg/paths"
)

// Isolate points the user configuration directory and the log file at
// fresh temp directories for the duration of t
func Isolate(t *testing.T) {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
}
