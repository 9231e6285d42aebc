package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath_Explicit(t *testing.T) {
	require.Equal(t, "/tmp/custom.yaml", ResolveConfigPath("/tmp/custom.yaml"))
}

func TestResolveConfigPath_PrefersLocal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", filepath.Join(dir, "home"))

	require.Equal(t, filepath.Join(dir, "home", ".config", "weekly", "config.yaml"), ResolveConfigPath(""))

	require.NoError(t, os.MkdirAll(LocalDir, 0o750))
	require.NoError(t, os.WriteFile(LocalConfigPath(), []byte("{}"), 0o600))
	require.Equal(t, LocalConfigPath(), ResolveConfigPath(""))
}

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".config", "weekly", "weekly.db"), DefaultDBPath())
	require.Equal(t, filepath.Join(home, ".config", "weekly", "traces", "traces.jsonl"), DefaultTracesFilePath())
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, "data", "w.db"), Expand("~/data/w.db"))
	require.Equal(t, "/abs/w.db", Expand("/abs/w.db"))
	require.Equal(t, "~", Expand("~"))
}
